package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nextlevel/storefront/internal/models"
)

func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := UserFrom(c)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "you must be logged in")
		}
		if user.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}
