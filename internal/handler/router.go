package handler

import "github.com/gin-gonic/gin"

// Handlers groups everything mounted under the API prefix.
type Handlers struct {
	Stores   *StoreHandler
	Products *ProductHandler
	Orders   *OrderHandler
	Metrics  *MetricsHandler

	// ExportsEnabled mounts the opening-hours download.
	ExportsEnabled bool
}

// RegisterRoutes mounts the API on group. Static segments such as /stores/active are
// registered next to /:id, which gin resolves in favour of the static path.
func RegisterRoutes(group *gin.RouterGroup, h Handlers) {
	if h.Stores != nil {
		stores := group.Group("/stores")
		stores.POST("", h.Stores.Create)
		stores.GET("", h.Stores.List)
		stores.GET("/active", h.Stores.Active)
		stores.GET("/:id", h.Stores.Get)
		stores.PUT("/:id", h.Stores.Update)
		stores.DELETE("/:id", h.Stores.Delete)
		stores.GET("/:id/status", h.Stores.Status)
		stores.GET("/:id/hours", h.Stores.Hours)
		stores.GET("/:id/stats", h.Stores.Stats)
		if h.ExportsEnabled {
			stores.GET("/:id/hours/export", h.Stores.ExportHours)
		}
	}

	if h.Products != nil {
		products := group.Group("/products")
		products.POST("", h.Products.Create)
		products.GET("", h.Products.List)
		products.GET("/active", h.Products.Active)
		products.GET("/:id", h.Products.Get)
		products.PUT("/:id", h.Products.Update)
		products.DELETE("/:id", h.Products.Delete)
		products.GET("/:id/availability", h.Products.Availability)
	}

	if h.Orders != nil {
		orders := group.Group("/orders")
		orders.POST("", h.Orders.Create)
		orders.GET("", h.Orders.List)
		orders.GET("/store/:storeId", h.Orders.ListByStore)
		orders.GET("/:id", h.Orders.Get)
		orders.PUT("/:id", h.Orders.Update)
		orders.DELETE("/:id", h.Orders.Delete)
	}

	if h.Metrics != nil {
		group.GET("/metrics/summary", h.Metrics.Summary)
	}
}
