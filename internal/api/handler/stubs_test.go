package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// --- auth service stub ---

type stubAuthService struct {
	token       string
	user        *domain.User
	loginErr    error
	registerErr error

	loggedOut []string
}

func (a *stubAuthService) Register(_ context.Context, username, _ string) (*domain.User, error) {
	if a.registerErr != nil {
		return nil, a.registerErr
	}
	return &domain.User{ID: 1, Username: username, Role: domain.RoleUser}, nil
}

func (a *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if a.loginErr != nil {
		return "", nil, a.loginErr
	}
	return a.token, a.user, nil
}

func (a *stubAuthService) Authenticate(_ context.Context, token string) (*domain.User, string, error) {
	if token != a.token {
		return nil, "", domain.ErrSessionNotFound
	}
	return a.user, "sid-1", nil
}

func (a *stubAuthService) Logout(_ context.Context, token string) error {
	a.loggedOut = append(a.loggedOut, token)
	return nil
}

// --- item service stub ---

type stubItemService struct {
	listResult *ports.ListItemsResult
	listErr    error
	addErr     error
	editErr    error
	deleteErr  error

	added   []ports.MutateItemInput
	edited  []ports.MutateItemInput
	deleted []ports.MutateItemInput
}

func (s *stubItemService) List(_ context.Context, _ ports.ListItemsInput) (*ports.ListItemsResult, error) {
	return s.listResult, s.listErr
}

func (s *stubItemService) Add(_ context.Context, input ports.MutateItemInput) (*domain.Item, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.added = append(s.added, input)
	return &domain.Item{ID: 1, Name: input.Name, CreatorID: input.Actor.ID}, nil
}

func (s *stubItemService) Edit(_ context.Context, input ports.MutateItemInput) error {
	if s.editErr != nil {
		return s.editErr
	}
	s.edited = append(s.edited, input)
	return nil
}

func (s *stubItemService) Delete(_ context.Context, input ports.MutateItemInput) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, input)
	return nil
}

// --- user service stub ---

type stubUserService struct {
	listResult *ports.ListUsersResult
	actionErr  error

	calls []string
}

func (s *stubUserService) List(_ context.Context, _, _ int) (*ports.ListUsersResult, error) {
	return s.listResult, nil
}

func (s *stubUserService) UpdateRole(_ context.Context, _ int64, _ string) error {
	s.calls = append(s.calls, "edit_role")
	return s.actionErr
}

func (s *stubUserService) UpdateName(_ context.Context, _ int64, _ string) error {
	s.calls = append(s.calls, "edit_name")
	return s.actionErr
}

func (s *stubUserService) ChangePassword(_ context.Context, _ int64, _, _ string) error {
	s.calls = append(s.calls, "change_password")
	return s.actionErr
}

func (s *stubUserService) Delete(_ context.Context, _, _ int64) error {
	s.calls = append(s.calls, "delete")
	return s.actionErr
}

func (s *stubUserService) EnsureAdmin(_ context.Context, _ string) error { return nil }

// --- session store stub ---

type stubSessionStore struct {
	flashes map[string]ports.Flash
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{flashes: make(map[string]ports.Flash)}
}

func (s *stubSessionStore) Create(context.Context, int64) (string, error) { return "sid-1", nil }

func (s *stubSessionStore) Resolve(context.Context, string) (int64, error) {
	return 0, domain.ErrSessionNotFound
}

func (s *stubSessionStore) Delete(context.Context, string) error { return nil }

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

// --- request helpers ---

func newFormContext(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newGetContext(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Errorf("location = %q, want %q", got, location)
	}
}

func assertFlash(t *testing.T, store *stubSessionStore, sid, kind, message string) {
	t.Helper()
	flash, ok := store.flashes[sid]
	if !ok {
		t.Fatalf("no notice queued for %s", sid)
	}
	if flash.Kind != kind || flash.Message != message {
		t.Errorf("notice = %+v, want %s %q", flash, kind, message)
	}
}
