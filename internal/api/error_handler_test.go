package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zafiro/crm/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := map[string]struct {
		err      error
		code     int
		location string
		body     string
	}{
		"unauthenticated": {
			err: domain.ErrUnauthenticated, code: http.StatusSeeOther,
			location: "/auth/login?redirect=%2Fcrm%2Fclients",
		},
		"forbidden": {
			err: domain.ErrForbidden, code: http.StatusSeeOther, location: "/unauthorized",
		},
		"duplicate": {
			err:  fmt.Errorf("create client: %w: %w", domain.ErrCreate, domain.ErrDuplicateClient),
			code: http.StatusConflict, body: "client already exists",
		},
		"invalid input": {
			err:  fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput),
			code: http.StatusUnprocessableEntity, body: "invalid input: no fields to update",
		},
		"missing profile": {
			err:  fmt.Errorf("update role: %w", domain.ErrProfileNotFound),
			code: http.StatusNotFound, body: "user profile not found",
		},
		"invalid credentials": {
			err: domain.ErrInvalidCredentials, code: http.StatusUnauthorized, body: "invalid credentials",
		},
		"echo error": {
			err: echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), code: http.StatusBadRequest, body: "invalid payload",
		},
		"store failure": {
			err:  fmt.Errorf("list clients: %w: %w", domain.ErrFetch, errors.New("dial tcp: refused")),
			code: http.StatusInternalServerError, body: "internal server error",
		},
	}

	for name, tc := range cases {
		var logs bytes.Buffer
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/crm/clients", nil), rec)

		NewHTTPErrorHandler(zerolog.New(&logs))(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", name, tc.code, rec.Code)
		}
		if tc.location != "" && rec.Header().Get(echo.HeaderLocation) != tc.location {
			t.Fatalf("%s: expected Location %q, got %q", name, tc.location, rec.Header().Get(echo.HeaderLocation))
		}
		if tc.body != "" && !strings.Contains(rec.Body.String(), tc.body) {
			t.Fatalf("%s: expected body to contain %q, got %s", name, tc.body, rec.Body.String())
		}
		if strings.Contains(rec.Body.String(), "refused") {
			t.Fatalf("%s: internal cause leaked: %s", name, rec.Body.String())
		}
		if tc.code == http.StatusInternalServerError && !strings.Contains(logs.String(), "refused") {
			t.Fatalf("%s: cause should be logged, got %q", name, logs.String())
		}
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("committed response must not be rewritten")
	}
}
