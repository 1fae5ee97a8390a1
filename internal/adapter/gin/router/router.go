package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"layered-user-service/api/swagger"
	"layered-user-service/internal/adapter/gin/handler"
	"layered-user-service/internal/adapter/gin/middleware"
	"layered-user-service/internal/adapter/ratelimit"
)

// Options toggles optional routes.
type Options struct {
	ServiceName    string
	SwaggerEnabled bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	limiter *ratelimit.Limiter,
	log *zap.Logger,
	opts Options,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	// Logger wraps Recovery so panicking requests still get an access log line
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	if opts.SwaggerEnabled {
		ui := httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
		router.GET("/swagger/*any", func(c *gin.Context) {
			if c.Param("any") == "/doc.json" {
				c.Data(http.StatusOK, "application/json; charset=utf-8", swagger.Doc)
				return
			}
			ui(c.Writer, c.Request)
		})
	}

	// List stays unrouted; GET serves the sample user
	users := router.Group("/users", middleware.RateLimiter(limiter, log))
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.SampleUser)
	}

	return router
}
