package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if UserFrom(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "you must be logged in")
		}
		return next(c)
	}
}
