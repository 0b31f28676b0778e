package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO items (name, description, creator_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		item.Name, item.Description, item.CreatorID,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return item, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var it domain.Item
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, creator_id, created_at, updated_at FROM items WHERE id=$1`, id,
	).Scan(&it.ID, &it.Name, &it.Description, &it.CreatorID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &it, nil
}

// Update always bumps updated_at, even when name and description are
// submitted unchanged.
func (r *ItemRepository) Update(ctx context.Context, id int64, name, description string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET name=$2, description=$3, updated_at=now() WHERE id=$1`,
		id, name, description,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Missing rows are skipped silently on purpose.
	_, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id=$1`, id)
	return err
}

func (r *ItemRepository) List(ctx context.Context, filter ports.ListItemsFilter) ([]domain.Item, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where := ``
	args := []any{}
	if filter.CreatorID != 0 {
		where = ` WHERE i.creator_id=$1`
		args = append(args, filter.CreatorID)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM items i`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	limitArgs := append(args, filter.PageSize, offset)
	query := fmt.Sprintf(
		`SELECT i.id, i.name, i.description, i.creator_id, i.created_at, i.updated_at,
		        u.username, COALESCE(u.name, '')
		 FROM items i
		 JOIN users u ON u.id = i.creator_id%s
		 ORDER BY i.created_at DESC, i.id DESC
		 LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)

	rows, err := r.pool.Query(ctx, query, limitArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0, filter.PageSize)
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.CreatorID, &it.CreatedAt, &it.UpdatedAt,
			&it.CreatorUsername, &it.CreatorName); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}
