package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcadapter "layered-user-service/internal/adapter/grpc"
	"layered-user-service/internal/adapter/grpc/middleware"
	"layered-user-service/internal/adapter/ratelimit"
	usersvc "layered-user-service/internal/service/user"
	"layered-user-service/pkg/logger"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(svc usersvc.Service, limiter *ratelimit.Limiter, l *zap.Logger) *grpc.Server {
	// Request ids first so rate limit logs carry them
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
			middleware.RateLimit(limiter, l),
		),
	)
	grpcadapter.RegisterUserServiceServer(grpcServer, grpcadapter.NewUserServiceServer(svc, l))

	return grpcServer
}
