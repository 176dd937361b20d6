package handler

import (
	"weedhaven-storefront/internal/adapter/http/middleware"
	"weedhaven-storefront/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Catalog        ports.Catalog
	CartSvc        ports.CartService
	WalletSvc      ports.WalletService
	CheckoutSvc    ports.CheckoutService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// API v1 routes; every route runs under an anonymous guest session.
	session := middleware.GuestSession(deps.TokenSvc, deps.Logger)
	v1 := r.Group("/api/v1", session)

	catalogHandler := NewCatalogHandler(deps.Catalog)
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/products", catalogHandler.ListProducts)
		catalog.GET("/dispensaries", catalogHandler.ListDispensaries)
		catalog.GET("/dispensaries/:id", catalogHandler.GetDispensary)
	}

	cartHandler := NewCartHandler(deps.CartSvc)
	cart := v1.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveItem)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallet := v1.Group("/wallet")
	{
		wallet.GET("", walletHandler.Get)
		wallet.POST("/connect", walletHandler.Connect)
		wallet.POST("/disconnect", walletHandler.Disconnect)
	}

	checkoutHandler := NewCheckoutHandler(deps.CheckoutSvc)
	v1.POST("/checkout", checkoutHandler.Checkout)

	return r
}
