package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/zafiro/crm/internal/api/middleware"
	"github.com/zafiro/crm/internal/core/domain"
)

// currentUser returns the profile placed in the context by
// middleware.ResolveUser. Its absence is reported as unauthenticated so the
// error handler sends the client to the login page.
func currentUser(c echo.Context) (*domain.UserProfile, error) {
	user := middleware.UserFrom(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
