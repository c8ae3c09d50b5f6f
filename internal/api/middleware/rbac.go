package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/zafiro/crm/internal/core/domain"
)

// Authorizer is the part of the access service the middlewares depend on.
type Authorizer interface {
	ResolveUser(ctx context.Context, session *domain.Session) (*domain.UserProfile, error)
	RequirePermission(user *domain.UserProfile, resource domain.Resource, action domain.Action) error
	RequireRole(user *domain.UserProfile, allowed ...domain.RoleName) error
}

// ResolveUser loads the profile and role of the session's user. It must run
// after SessionGate. A missing profile is handled like a missing session; a
// profile whose role is not recognised is denied.
func ResolveUser(access Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFrom(c)
			if session == nil {
				return RedirectToLogin(c)
			}

			user, err := access.ResolveUser(c.Request().Context(), session)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrUnauthenticated):
					return RedirectToLogin(c)
				case errors.Is(err, domain.ErrUnknownRole):
					return RedirectToUnauthorized(c)
				default:
					return err
				}
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// RequirePermission lets the request through only when the resolved user's
// permission matrix grants action on resource.
func RequirePermission(access Authorizer, resource domain.Resource, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFrom(c)
			if user == nil {
				return RedirectToLogin(c)
			}
			if err := access.RequirePermission(user, resource, action); err != nil {
				return RedirectToUnauthorized(c)
			}
			return next(c)
		}
	}
}

// RequireRole enforces role-based access control for whole sections.
func RequireRole(access Authorizer, allowedRoles ...domain.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFrom(c)
			if user == nil {
				return RedirectToLogin(c)
			}
			if err := access.RequireRole(user, allowedRoles...); err != nil {
				return RedirectToUnauthorized(c)
			}
			return next(c)
		}
	}
}
