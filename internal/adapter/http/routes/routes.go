package routes

import (
	"net/http"

	"userapp/internal/adapter/http/handler"
	"userapp/internal/adapter/http/middleware"
	"userapp/internal/core/telemetry"
	"userapp/pkg/config"
	"userapp/pkg/middlewares"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	UserHandler *handler.UserHandler
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.AppLogger, config *config.AppConfig) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.CurrentMiddleware())

	middlewares.SetupGinMiddlewareWithConfig(router, metrics, logger, config)

	router.GET("/health", health)

	if handlers.UserHandler != nil {
		setupUserRoutes(router, handlers.UserHandler)
	}

	return router
}

// SetupRouterForTests registers the routes without tracing, logging, rate
// limiting or metrics.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.CurrentMiddleware())

	router.GET("/health", health)

	if handlers.UserHandler != nil {
		setupUserRoutes(router, handlers.UserHandler)
	}

	return router
}

func setupUserRoutes(router *gin.Engine, userHandler *handler.UserHandler) {
	users := router.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.DELETE("", userHandler.DeleteUsers)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
