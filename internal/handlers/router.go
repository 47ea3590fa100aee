package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/middleware"
	"storefront-api/internal/services"
)

type RouterOptions struct {
	Production  bool
	CORSOrigins []string
}

// NewRouter mounts every endpoint under /api plus /health.
func NewRouter(svc *services.Services, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if !opts.Production {
		router.Use(gin.Logger())
	}
	router.Use(middleware.CORS(opts.CORSOrigins))

	resp := NewResponder(opts.Production)
	products := NewProductHandler(svc.Catalog, resp)
	carts := NewCartHandler(svc.Carts, resp)
	orders := NewOrderHandler(svc.Orders, resp)
	contacts := NewContactHandler(svc.Contacts, resp)
	admin := NewAdminHandler(svc.Admin, resp)
	auth := NewAuthHandler(svc.Users, resp)

	protect := middleware.Protect(svc.Users)
	adminOnly := middleware.Admin()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		p := api.Group("/products")
		p.GET("", products.GetProducts)
		p.GET("/new-arrivals", products.GetNewArrivals)
		p.GET("/categories/all", products.GetCategories)
		p.GET("/:id", products.GetProduct)
		p.POST("", protect, adminOnly, products.CreateProduct)
		p.PUT("/:id", protect, adminOnly, products.UpdateProduct)
		p.DELETE("/:id", protect, adminOnly, products.DeleteProduct)
		p.DELETE("", protect, adminOnly, products.DeleteProducts)

		cart := api.Group("/cart", protect)
		cart.GET("", carts.GetCart)
		cart.POST("", carts.AddItem)
		cart.PUT("/:productId", carts.UpdateItem)
		cart.DELETE("/:productId", carts.RemoveItem)
		cart.DELETE("", carts.ClearCart)

		o := api.Group("/orders", protect)
		o.POST("", orders.CreateOrder)
		o.GET("", orders.GetMyOrders)
		o.GET("/all", adminOnly, orders.GetAllOrders)
		o.GET("/:id", orders.GetOrder)
		o.PUT("/:id/status", adminOnly, orders.UpdateStatus)

		a := api.Group("/auth")
		a.POST("/register", auth.Register)
		a.POST("/login", auth.Login)
		a.GET("/me", protect, auth.Me)
		a.PUT("/profile", protect, auth.UpdateProfile)
		a.GET("/users", protect, adminOnly, auth.ListUsers)

		ct := api.Group("/contact")
		ct.POST("", contacts.Submit)
		ct.GET("", protect, adminOnly, contacts.List)
		ct.GET("/:id", protect, adminOnly, contacts.Get)
		ct.PUT("/:id", protect, adminOnly, contacts.UpdateStatus)

		api.GET("/admin/stats", protect, adminOnly, admin.GetStats)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{Success: false, Message: "Route not found"})
	})

	return router
}
