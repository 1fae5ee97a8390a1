package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "layered-user-service/internal/adapter/gin/handler"
	ginrouter "layered-user-service/internal/adapter/gin/router"
	"layered-user-service/internal/adapter/ratelimit"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	limiter *ratelimit.Limiter,
	opts ginrouter.Options,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(handler, limiter, l, opts)

	return &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
