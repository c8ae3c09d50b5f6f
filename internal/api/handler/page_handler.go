package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the fixed destinations of access redirects and the
// current user's own profile.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Unauthorized handles GET /unauthorized.
//
// @Summary      Access denied page
// @Tags         pages
// @Produce      json
// @Success      403  {object}  pageResponse
// @Router       /unauthorized [get]
func (h *PageHandler) Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusForbidden, pageResponse{
		Status:  http.StatusForbidden,
		Message: "you do not have permission to view this page",
	})
}

// NotFound handles GET /not-found.
//
// @Summary      Not found page
// @Tags         pages
// @Produce      json
// @Success      404  {object}  pageResponse
// @Router       /not-found [get]
func (h *PageHandler) NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, pageResponse{
		Status:  http.StatusNotFound,
		Message: "the requested record does not exist",
	})
}

// Me handles GET /me and returns the signed-in employee with the effective
// permission of every resource.
//
// @Summary      Current user
// @Tags         pages
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      303  {string}  string  "Redirect to login"
// @Router       /me [get]
func (h *PageHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMeResponse(user))
}
