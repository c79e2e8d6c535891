// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tavola/internal/http/handlers"
	"tavola/internal/http/middleware"
	"tavola/internal/modules/cart"
	"tavola/internal/modules/delivery"
	"tavola/internal/modules/order"
	"tavola/internal/modules/store"
)

type ServerDeps struct {
	Stores   *store.Service
	Delivery *delivery.Service
	Carts    *cart.Service
	Orders   *order.Service
	Logger   *zap.Logger
	AdminKey string
}

func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	storeHandler := handlers.NewStoreHandler(deps.Stores)
	deliveryHandler := handlers.NewDeliveryHandler(deps.Delivery)
	cartHandler := handlers.NewCartHandler(deps.Carts, deps.Stores)
	orderHandler := handlers.NewOrderHandler(deps.Orders)

	api := r.Group("/api")
	{
		api.GET("/stores", storeHandler.ListActive)

		api.GET("/delivery/search", deliveryHandler.Search)
		api.POST("/delivery/check", deliveryHandler.Check)

		api.GET("/cart", cartHandler.Get)
		api.POST("/cart/items", cartHandler.AddItem)
		api.PATCH("/cart/items/:productId", cartHandler.SetQuantity)
		api.PATCH("/cart/items/:productId/addons/:addOnId", cartHandler.SetAddOnQuantity)
		api.DELETE("/cart", cartHandler.Clear)
		api.GET("/cart/summary", cartHandler.Summary)

		api.POST("/orders", orderHandler.Checkout)
		api.GET("/orders/:id", orderHandler.Get)
		api.POST("/orders/:id/cancel", orderHandler.CustomerCancel)
	}

	admin := r.Group("/api/admin", middleware.AdminKey(deps.AdminKey))
	{
		admin.GET("/stores", storeHandler.List)
		admin.GET("/stores/:id", storeHandler.Get)
		admin.POST("/stores", storeHandler.Create)
		admin.PUT("/stores/:id", storeHandler.Update)
		admin.DELETE("/stores/:id", storeHandler.Deactivate)

		admin.GET("/orders", orderHandler.List)
		admin.GET("/orders/:id/events", orderHandler.Events)
		admin.POST("/orders/:id/advance", orderHandler.Advance)
		admin.POST("/orders/:id/reject", orderHandler.Reject)
		admin.POST("/orders/:id/cancel", orderHandler.AdminCancel)
	}

	return r
}
