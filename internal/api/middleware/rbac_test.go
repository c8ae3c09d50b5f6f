package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/zafiro/crm/internal/core/domain"
)

type stubAuthorizer struct {
	users       map[string]*domain.UserProfile
	resolveErr  error
	resolveHits int
}

func (a *stubAuthorizer) ResolveUser(_ context.Context, session *domain.Session) (*domain.UserProfile, error) {
	a.resolveHits++
	if a.resolveErr != nil {
		return nil, a.resolveErr
	}
	u, ok := a.users[session.UserID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return u, nil
}

func (a *stubAuthorizer) RequirePermission(user *domain.UserProfile, resource domain.Resource, action domain.Action) error {
	if !domain.HasPermission(user, resource, action) {
		return domain.ErrForbidden
	}
	return nil
}

func (a *stubAuthorizer) RequireRole(user *domain.UserProfile, allowed ...domain.RoleName) error {
	if !user.HasRole(allowed...) {
		return domain.ErrForbidden
	}
	return nil
}

func salesUser() *domain.UserProfile {
	return &domain.UserProfile{
		ID:     "user-1",
		Active: true,
		Role: &domain.Role{Name: domain.RoleSales, Permissions: domain.PermissionMatrix{
			domain.ResourceClients: {Read: true},
		}},
	}
}

func newCtx(path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func mustNotRun(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	}
}

func TestResolveUser_SetsUser(t *testing.T) {
	c, rec := newCtx("/crm/clients")
	c.Set(ContextKeySession, &domain.Session{ID: "s1", UserID: "user-1"})
	access := &stubAuthorizer{users: map[string]*domain.UserProfile{"user-1": salesUser()}}

	handler := ResolveUser(access)(func(c echo.Context) error {
		if UserFrom(c) == nil {
			t.Fatalf("user not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestResolveUser_MissingProfileRedirectsToLogin(t *testing.T) {
	c, rec := newCtx("/crm/clients")
	c.Set(ContextKeySession, &domain.Session{ID: "s1", UserID: "ghost"})

	_ = ResolveUser(&stubAuthorizer{})(mustNotRun(t))(c)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login?redirect=%2Fcrm%2Fclients" {
		t.Fatalf("unexpected Location %q", loc)
	}
}

func TestResolveUser_NoSessionNeverHitsStore(t *testing.T) {
	c, rec := newCtx("/crm/clients")
	access := &stubAuthorizer{}

	_ = ResolveUser(access)(mustNotRun(t))(c)

	if rec.Code != http.StatusSeeOther || access.resolveHits != 0 {
		t.Fatalf("expected redirect without lookup, code=%d hits=%d", rec.Code, access.resolveHits)
	}
}

func TestResolveUser_UnknownRoleIsForbidden(t *testing.T) {
	c, rec := newCtx("/crm/clients")
	c.Set(ContextKeySession, &domain.Session{ID: "s1", UserID: "user-1"})

	_ = ResolveUser(&stubAuthorizer{resolveErr: domain.ErrUnknownRole})(mustNotRun(t))(c)

	if rec.Header().Get(echo.HeaderLocation) != UnauthorizedPath {
		t.Fatalf("expected redirect to %s, got %q", UnauthorizedPath, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestResolveUser_StoreFailurePropagates(t *testing.T) {
	c, _ := newCtx("/crm/clients")
	c.Set(ContextKeySession, &domain.Session{ID: "s1", UserID: "user-1"})
	boom := errors.New("boom")

	err := ResolveUser(&stubAuthorizer{resolveErr: boom})(mustNotRun(t))(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestRequirePermission_Allows(t *testing.T) {
	c, rec := newCtx("/crm/clients")
	c.Set(ContextKeyUser, salesUser())

	called := false
	handler := RequirePermission(&stubAuthorizer{}, domain.ResourceClients, domain.ActionRead)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, called=%v code=%d", called, rec.Code)
	}
}

func TestRequirePermission_Forbids(t *testing.T) {
	c, rec := newCtx("/crm/clients")
	c.Set(ContextKeyUser, salesUser())

	_ = RequirePermission(&stubAuthorizer{}, domain.ResourceClients, domain.ActionDelete)(mustNotRun(t))(c)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != UnauthorizedPath {
		t.Fatalf("expected redirect to %s, got %q", UnauthorizedPath, loc)
	}
}

func TestRequirePermission_WithoutUserRedirectsToLogin(t *testing.T) {
	c, rec := newCtx("/crm/clients")

	_ = RequirePermission(&stubAuthorizer{}, domain.ResourceClients, domain.ActionRead)(mustNotRun(t))(c)

	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) == UnauthorizedPath {
		t.Fatalf("expected login redirect, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRequireRole_Allows(t *testing.T) {
	c, rec := newCtx("/admin/users/u2/role")
	c.Set(ContextKeyUser, salesUser())

	handler := RequireRole(&stubAuthorizer{}, domain.RoleAdmin, domain.RoleSales)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	c, rec := newCtx("/admin/users/u2/role")
	c.Set(ContextKeyUser, salesUser())

	_ = RequireRole(&stubAuthorizer{}, domain.RoleAdmin)(mustNotRun(t))(c)

	if rec.Header().Get(echo.HeaderLocation) != UnauthorizedPath {
		t.Fatalf("expected redirect to %s, got %q", UnauthorizedPath, rec.Header().Get(echo.HeaderLocation))
	}
}
