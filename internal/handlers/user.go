package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nextlevel/storefront/internal/logging"
	authmw "github.com/nextlevel/storefront/internal/middleware/auth"
	"github.com/nextlevel/storefront/internal/models"
	"github.com/nextlevel/storefront/internal/service"
	"github.com/nextlevel/storefront/internal/transport"
	"github.com/nextlevel/storefront/internal/util"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.UserFrom(c)

	me, err := h.Svc.Me(ctx, user.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, me.Public())
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_update_profile")
	user := authmw.UserFrom(c)

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.UpdateProfile(ctx, user.UserID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated.Public())
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx := c.Request().Context()
	skip, take := util.Clamp(queryInt(c, "skip", 0), queryInt(c, "take", 10), 10)

	total, users, err := h.Svc.GetAllUsers(ctx, skip, take)
	if err != nil {
		return httpError(err)
	}

	public := make([]models.PublicUser, len(users))
	for i := range users {
		public[i] = users[i].Public()
	}
	return c.JSON(http.StatusOK, transport.ListResponse[models.PublicUser]{
		Items: public,
		Total: total,
	})
}

func (h *UserHandler) UpdateUserRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_update_role")
	actor := authmw.UserFrom(c)

	var req transport.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_role_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.UpdateUserRole(ctx, actor.UserID, c.Param("id"), req.Role)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated.Public())
}
