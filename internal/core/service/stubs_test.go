package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// --- user repository stub ---

type stubUserRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = r.seq
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	if u, ok := r.users[id]; ok {
		u.Role = role
	}
	return nil
}

func (r *stubUserRepo) UpdateName(_ context.Context, id int64, name *string) error {
	if u, ok := r.users[id]; ok {
		u.Name = name
	}
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	if u, ok := r.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (r *stubUserRepo) UpdateLastActivity(_ context.Context, id int64) error {
	if u, ok := r.users[id]; ok {
		u.LastActivity = time.Now().UTC()
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, page, pageSize int) ([]domain.User, int64, error) {
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return paginate(all, page, pageSize), int64(len(all)), nil
}

func (r *stubUserRepo) CountAdmins(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			n++
		}
	}
	return n, nil
}

// --- item repository stub ---

type stubItemRepo struct {
	seq   int64
	items map[int64]*domain.Item
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[int64]*domain.Item)}
}

func cloneItem(it *domain.Item) *domain.Item {
	if it == nil {
		return nil
	}
	clone := *it
	return &clone
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.seq++
	copy := cloneItem(item)
	copy.ID = r.seq
	now := time.Now().UTC()
	copy.CreatedAt = now
	copy.UpdatedAt = now
	r.items[copy.ID] = cloneItem(copy)
	return copy, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return cloneItem(it), nil
}

func (r *stubItemRepo) Update(_ context.Context, id int64, name, description string) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	it.Name = name
	it.Description = description
	it.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id int64) error {
	delete(r.items, id)
	return nil
}

func (r *stubItemRepo) List(_ context.Context, filter ports.ListItemsFilter) ([]domain.Item, int64, error) {
	all := make([]domain.Item, 0, len(r.items))
	for _, it := range r.items {
		if filter.CreatorID != 0 && it.CreatorID != filter.CreatorID {
			continue
		}
		all = append(all, *it)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return paginateItems(all, filter.Page, filter.PageSize), int64(len(all)), nil
}

// --- session store stub ---

type stubSessionStore struct {
	seq      int64
	sessions map[string]int64
	flashes  map[string]ports.Flash
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		sessions: make(map[string]int64),
		flashes:  make(map[string]ports.Flash),
	}
}

func (s *stubSessionStore) Create(_ context.Context, userID int64) (string, error) {
	s.seq++
	sid := fmt.Sprintf("sid-%d", s.seq)
	s.sessions[sid] = userID
	return sid, nil
}

func (s *stubSessionStore) Resolve(_ context.Context, sid string) (int64, error) {
	userID, ok := s.sessions[sid]
	if !ok {
		return 0, domain.ErrSessionNotFound
	}
	return userID, nil
}

func (s *stubSessionStore) Delete(_ context.Context, sid string) error {
	delete(s.sessions, sid)
	delete(s.flashes, sid)
	return nil
}

func (s *stubSessionStore) SetFlash(_ context.Context, sid string, flash ports.Flash) error {
	s.flashes[sid] = flash
	return nil
}

func (s *stubSessionStore) PopFlash(_ context.Context, sid string) (*ports.Flash, error) {
	f, ok := s.flashes[sid]
	if !ok {
		return nil, nil
	}
	delete(s.flashes, sid)
	return &f, nil
}

// --- helpers ---

func paginate(all []domain.User, page, pageSize int) []domain.User {
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func paginateItems(all []domain.Item, page, pageSize int) []domain.Item {
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
