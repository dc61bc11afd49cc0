package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nextlevel/storefront/internal/logging"
	authmw "github.com/nextlevel/storefront/internal/middleware/auth"
	"github.com/nextlevel/storefront/internal/models"
	"github.com/nextlevel/storefront/internal/repo"
	"github.com/nextlevel/storefront/internal/service"
	"github.com/nextlevel/storefront/internal/transport"
	"github.com/nextlevel/storefront/internal/util"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_create")
	user := authmw.UserFrom(c)

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, user.UserID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.UserFrom(c)
	skip, take := util.Clamp(queryInt(c, "skip", 0), queryInt(c, "take", 10), 10)

	total, orders, err := h.Svc.GetMyOrders(ctx, user.UserID, skip, take)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.ListResponse[models.Order]{
		Items: orders,
		Total: total,
	})
}

func (h *OrderHandler) GetOrderByID(c echo.Context) error {
	order, err := h.Svc.GetOrderByID(c.Request().Context(), authmw.UserFrom(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	skip, take := util.Clamp(queryInt(c, "skip", 0), queryInt(c, "take", 10), 10)

	filter := repo.OrderFilter{
		UserID: c.QueryParam("user_id"),
		Status: c.QueryParam("status"),
		Skip:   skip,
		Take:   take,
	}
	if s := c.QueryParam("from"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
		filter.From = &ts
	}
	if s := c.QueryParam("to"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
		filter.To = &ts
	}

	total, orders, err := h.Svc.GetAllOrders(ctx, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.ListResponse[models.Order]{
		Items: orders,
		Total: total,
	})
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_update_status")

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateOrderStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}
