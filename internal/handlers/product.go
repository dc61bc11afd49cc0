package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nextlevel/storefront/internal/logging"
	"github.com/nextlevel/storefront/internal/models"
	"github.com/nextlevel/storefront/internal/repo"
	"github.com/nextlevel/storefront/internal/service"
	"github.com/nextlevel/storefront/internal/transport"
	"github.com/nextlevel/storefront/internal/util"
)

type ProductHandler struct {
	Svc *service.ProductService
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx := c.Request().Context()
	skip, take := util.Clamp(queryInt(c, "skip", 0), queryInt(c, "take", 12), 12)

	filter := repo.ProductFilter{
		Search:   c.QueryParam("search"),
		MinPrice: queryFloat(c, "min_price"),
		MaxPrice: queryFloat(c, "max_price"),
		SortBy:   c.QueryParam("sort_by"),
		Skip:     skip,
		Take:     take,
	}

	total, products, err := h.Svc.GetAllProducts(ctx, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.ListResponse[models.Product]{
		Items: products,
		Total: total,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	product, err := h.Svc.GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_update")

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.Svc.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *ProductHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	skip, take := util.Clamp(queryInt(c, "skip", 0), queryInt(c, "take", 12), 12)

	total, products, err := h.Svc.Search(ctx, c.QueryParam("q"), skip, take)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.ListResponse[models.Product]{
		Items: products,
		Total: total,
	})
}
