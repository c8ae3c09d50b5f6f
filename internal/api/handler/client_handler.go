package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zafiro/crm/internal/api/middleware"
	"github.com/zafiro/crm/internal/core/domain"
	"github.com/zafiro/crm/internal/core/ports"
)

// ClientHandler serves the client pages of the CRM. Access checks run in the
// route middlewares before any of these methods.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List handles GET /crm/clients.
//
// @Summary      List or search clients
// @Description  Without q every client is returned. With q, clients whose first name, last name or email contain q (case-insensitive) are returned. Both are ordered by last name.
// @Tags         clients
// @Produce      json
// @Param        q    query     string  false  "Search text"
// @Success      200  {object}  listClientsResponse
// @Failure      303  {string}  string  "Redirect to login or to the access-denied page"
// @Failure      500  {object}  errorResponse
// @Router       /crm/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		clients []domain.Client
		err     error
	)
	if q := c.QueryParam("q"); q != "" {
		clients, err = h.service.SearchClients(ctx, q)
	} else {
		clients, err = h.service.ListClients(ctx)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(clients))
}

// Get handles GET /crm/clients/:id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  clientResponse
// @Failure      303  {string}  string  "Redirect to the not-found page when the client does not exist"
// @Failure      500  {object}  errorResponse
// @Router       /crm/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if client == nil {
		return c.Redirect(http.StatusSeeOther, middleware.NotFoundPath)
	}

	return c.JSON(http.StatusOK, toClientResponse(*client))
}

// Create handles POST /crm/clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /crm/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	client, err := h.service.CreateClient(c.Request().Context(), toNewClient(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toClientResponse(*client))
}

// Update handles PATCH /crm/clients/:id. Only the fields present in the body
// are changed.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Client id"
// @Param        body  body      updateClientRequest  true  "Fields to change"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /crm/clients/{id} [patch]
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	upd := toUpdateClient(req)
	if upd.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}

	client, err := h.service.UpdateClient(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toClientResponse(*client))
}

// Delete handles DELETE /crm/clients/:id. Deleting an unknown id succeeds.
//
// @Summary      Delete a client
// @Tags         clients
// @Param        id   path  string  true  "Client id"
// @Success      204
// @Failure      500  {object}  errorResponse
// @Router       /crm/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteClient(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
