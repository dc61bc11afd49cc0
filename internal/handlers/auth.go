package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nextlevel/storefront/internal/logging"
	"github.com/nextlevel/storefront/internal/service"
	"github.com/nextlevel/storefront/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.AuthResponse{
		Token: res.Token,
		User:  res.User.Public(),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.AuthResponse{
		Token: res.Token,
		User:  res.User.Public(),
	})
}

// Verify reports token validity without ever failing the request itself.
func (h *AuthHandler) Verify(c echo.Context) error {
	var req transport.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	claims, ok := h.Svc.Verify(req.Token)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"valid": false, "user": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true, "user": claims})
}
