package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

const defaultPageSize = 10

// ItemService implements the scoped item listing and the add/edit/delete
// actions behind it.
type ItemService struct {
	repo   ports.ItemRepository
	logger zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, logger zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger}
}

// List returns one page of items. Admins see every item; everyone else only
// sees items they created.
func (s *ItemService) List(ctx context.Context, input ports.ListItemsInput) (*ports.ListItemsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	filter := ports.ListItemsFilter{Page: page, PageSize: pageSize}
	if !input.Actor.Role.IsAdmin() {
		filter.CreatorID = input.Actor.ID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListItemsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// Add creates an item attributed to the actor.
func (s *ItemService) Add(ctx context.Context, input ports.MutateItemInput) (*domain.Item, error) {
	if !input.Actor.Role.CanEdit() {
		return nil, domain.ErrForbidden
	}

	item := &domain.Item{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatorID:   input.Actor.ID,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", created.ID).Int64("creator_id", created.CreatorID).Msg("item added")
	return created, nil
}

// Edit updates an item's name and description. updated_at is refreshed even
// when the submitted fields equal the stored ones. A missing item id is
// silently skipped.
func (s *ItemService) Edit(ctx context.Context, input ports.MutateItemInput) error {
	item, err := s.authorizeMutation(ctx, input)
	if err != nil || item == nil {
		return err
	}

	if err := s.repo.Update(ctx, item.ID, strings.TrimSpace(input.Name), strings.TrimSpace(input.Description)); err != nil {
		if err == domain.ErrItemNotFound {
			return nil
		}
		return err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("actor_id", input.Actor.ID).Msg("item updated")
	return nil
}

// Delete removes an item. A missing item id is reported as success.
func (s *ItemService) Delete(ctx context.Context, input ports.MutateItemInput) error {
	item, err := s.authorizeMutation(ctx, input)
	if err != nil || item == nil {
		return err
	}

	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("actor_id", input.Actor.ID).Msg("item deleted")
	return nil
}

// authorizeMutation loads the target item and checks the actor may touch it.
// Editors are restricted to items they created; admins may touch anything.
// A nil item with nil error means the id does not exist and the action should
// be skipped without complaint.
func (s *ItemService) authorizeMutation(ctx context.Context, input ports.MutateItemInput) (*domain.Item, error) {
	if !input.Actor.Role.CanEdit() {
		return nil, domain.ErrForbidden
	}

	item, err := s.repo.FindByID(ctx, input.ItemID)
	if err != nil {
		if err == domain.ErrItemNotFound {
			return nil, nil
		}
		return nil, err
	}

	if !input.Actor.Role.IsAdmin() && item.CreatorID != input.Actor.ID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func totalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
