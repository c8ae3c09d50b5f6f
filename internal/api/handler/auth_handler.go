package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/zafiro/crm/internal/api/middleware"
	"github.com/zafiro/crm/internal/core/ports"
)

// CookieConfig describes the session cookie written on login.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// LoginPage handles GET /auth/login, the destination of every login redirect.
//
// @Summary      Login required
// @Tags         auth
// @Produce      json
// @Param        redirect  query     string  false  "Page to return to after login"
// @Success      401       {object}  pageResponse
// @Router       /auth/login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, pageResponse{
		Status:   http.StatusUnauthorized,
		Message:  "sign in required",
		Redirect: safeRedirect(c.QueryParam("redirect")),
	})
}

// Login authenticates an employee and starts a session.
//
// When a local redirect target is supplied the client is sent back to it;
// otherwise the token is returned as JSON.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Success      303   {string}  string  "Redirect to the requested page"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(token, session.ExpiresAt))

	target := req.Redirect
	if target == "" {
		target = c.QueryParam("redirect")
	}
	if target = safeRedirect(target); target != "" {
		return c.Redirect(http.StatusSeeOther, target)
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: session.ExpiresAt})
}

// Logout ends the current session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      303  {string}  string  "Redirect to the login page"
// @Failure      500  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if session := middleware.SessionFrom(c); session != nil {
		if err := h.authService.SignOut(c.Request().Context(), session); err != nil {
			return err
		}
	}

	c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}

// safeRedirect returns target when it is a path on this site, otherwise "".
// Browsers strip tab and newline characters from URLs, so any control
// character disqualifies the target.
func safeRedirect(target string) string {
	if strings.IndexFunc(target, unicode.IsControl) >= 0 {
		return ""
	}
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return ""
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return target
}
