package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zafiro/crm/internal/core/ports"
)

// AdminHandler handles employee administration.
type AdminHandler struct {
	access ports.AccessService
}

func NewAdminHandler(access ports.AccessService) *AdminHandler {
	return &AdminHandler{access: access}
}

// UpdateRole handles PUT /admin/users/:id/role.
//
// @Summary      Change an employee's role
// @Tags         admin
// @Accept       json
// @Param        id    path  string             true  "User id"
// @Param        body  body  updateRoleRequest  true  "New role"
// @Success      204
// @Failure      303   {string}  string  "Redirect to the access-denied page"
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.access.UpdateUserRole(c.Request().Context(), actor, c.Param("id"), req.RoleID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
