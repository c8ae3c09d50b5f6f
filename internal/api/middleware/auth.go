package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zafiro/crm/internal/core/domain"
)

// Fixed destinations for requests that cannot proceed.
const (
	LoginPath        = "/auth/login"
	UnauthorizedPath = "/unauthorized"
	NotFoundPath     = "/not-found"
)

// Context keys set by the middlewares in this package.
const (
	ContextKeySession = "session"
	ContextKeyUser    = "user"
)

// SessionValidator is the part of the auth service the gate depends on.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)
}

// SessionGate validates the session token carried by the request and stores
// the session in the context. Requests without a valid session are redirected
// to the login page and never reach next.
func SessionGate(validator SessionValidator, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := validator.ValidateSession(c.Request().Context(), sessionToken(c, cookieName))
			if err != nil {
				return RedirectToLogin(c)
			}

			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// sessionToken reads the session cookie, falling back to a bearer token.
func sessionToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// LoginURL returns the login path with a redirect parameter preserving the
// originally requested path and query.
func LoginURL(r *http.Request) string {
	return LoginPath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
}

// RedirectToLogin sends the client to the login page.
func RedirectToLogin(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, LoginURL(c.Request()))
}

// RedirectToUnauthorized sends the client to the access-denied page.
func RedirectToUnauthorized(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, UnauthorizedPath)
}

// SessionFrom returns the session stored by SessionGate, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	s, _ := c.Get(ContextKeySession).(*domain.Session)
	return s
}

// UserFrom returns the user stored by ResolveUser, or nil.
func UserFrom(c echo.Context) *domain.UserProfile {
	u, _ := c.Get(ContextKeyUser).(*domain.UserProfile)
	return u
}
