package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/nextlevel/storefront/internal/handlers"
	authmw "github.com/nextlevel/storefront/internal/middleware/auth"
	"github.com/nextlevel/storefront/internal/token"
)

type Deps struct {
	Tokens         *token.Service
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health", handlers.Health)

	v1 := e.Group("/api/v1", authmw.WithUser(d.Tokens))

	// public tier
	v1.POST("/auth/register", d.AuthHandler.Register)
	v1.POST("/auth/login", d.AuthHandler.Login)
	v1.POST("/auth/verify", d.AuthHandler.Verify)
	v1.GET("/products", d.ProductHandler.GetAllProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProductByID)
	v1.GET("/search", d.ProductHandler.Search)

	// authenticated tier
	users := v1.Group("/users", authmw.RequireLogin)
	users.GET("/me", d.UserHandler.Me)
	users.PATCH("/me", d.UserHandler.UpdateProfile)

	orders := v1.Group("/orders", authmw.RequireLogin)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/my", d.OrderHandler.GetMyOrders)
	orders.GET("/:id", d.OrderHandler.GetOrderByID)

	// admin tier
	admin := v1.Group("/admin", authmw.AdminOnly)
	admin.GET("/users", d.UserHandler.GetAllUsers)
	admin.PATCH("/users/:id/role", d.UserHandler.UpdateUserRole)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.GET("/orders", d.OrderHandler.GetAllOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateOrderStatus)
}
