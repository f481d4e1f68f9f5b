package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shopora-backend/internal/handlers"
	"shopora-backend/internal/logger"
	"shopora-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins   []string
	Log            *logger.Logger
	AuthMiddleware *middleware.AuthMiddleware
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")

	api.GET("/health", handlers.Health)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", cfg.AuthHandler.Register)
		authRoutes.POST("/login", cfg.AuthHandler.Login)
		authRoutes.GET("/profile", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Profile)
	}

	products := api.Group("/products")
	{
		products.GET("", cfg.ProductHandler.ListProducts)
		products.GET("/:id", cfg.ProductHandler.GetProduct)

		admin := products.Group("", cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
		{
			admin.POST("", cfg.ProductHandler.CreateProduct)
			admin.PUT("/:id", cfg.ProductHandler.UpdateProduct)
			admin.DELETE("/:id", cfg.ProductHandler.DeleteProduct)
		}
	}

	cartRoutes := api.Group("/cart", cfg.AuthMiddleware.RequireAuth())
	{
		cartRoutes.GET("", cfg.CartHandler.GetCart)
		cartRoutes.POST("", cfg.CartHandler.AddToCart)
		cartRoutes.PUT("", cfg.CartHandler.UpdateCartItem)
		// Also serves DELETE /cart/clear.
		cartRoutes.DELETE("/:productId", cfg.CartHandler.RemoveFromCart)
	}

	return router
}
