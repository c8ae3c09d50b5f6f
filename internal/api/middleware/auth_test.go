package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/zafiro/crm/internal/core/domain"
)

type stubValidator struct {
	sessions map[string]*domain.Session
	lastSeen string
}

func (v *stubValidator) ValidateSession(_ context.Context, token string) (*domain.Session, error) {
	v.lastSeen = token
	s, ok := v.sessions[token]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}

func newStubValidator() *stubValidator {
	return &stubValidator{sessions: map[string]*domain.Session{
		"good-token": {ID: "s1", UserID: "user-1"},
	}}
}

func TestSessionGate_ValidCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/crm/clients", nil)
	req.AddCookie(&http.Cookie{Name: "crm_session", Value: "good-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := SessionGate(newStubValidator(), "crm_session")(func(c echo.Context) error {
		called = true
		if s := SessionFrom(c); s == nil || s.UserID != "user-1" {
			t.Fatalf("session not set: %+v", s)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionGate_BearerFallback(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	validator := newStubValidator()
	handler := SessionGate(validator, "crm_session")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if validator.lastSeen != "good-token" || rec.Code != http.StatusOK {
		t.Fatalf("bearer token not used: seen=%q code=%d", validator.lastSeen, rec.Code)
	}
}

func TestSessionGate_RedirectsToLogin(t *testing.T) {
	cases := map[string]func(r *http.Request){
		"no credentials": func(r *http.Request) {},
		"bad cookie": func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "crm_session", Value: "expired"})
		},
		"bad header format": func(r *http.Request) {
			r.Header.Set("Authorization", "Token good-token")
		},
	}

	for name, prepare := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/crm/clients/42?tab=notes", nil)
		prepare(req)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := SessionGate(newStubValidator(), "crm_session")(func(c echo.Context) error {
			t.Fatalf("%s: should not reach next", name)
			return nil
		})

		if err := handler(c); err != nil {
			t.Fatalf("%s: handler error: %v", name, err)
		}
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", name, rec.Code)
		}
		want := "/auth/login?redirect=%2Fcrm%2Fclients%2F42%3Ftab%3Dnotes"
		if got := rec.Header().Get(echo.HeaderLocation); got != want {
			t.Fatalf("%s: expected Location %q, got %q", name, want, got)
		}
	}
}
