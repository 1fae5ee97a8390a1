package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	ginhandler "layered-user-service/internal/adapter/gin/handler"
	ginrouter "layered-user-service/internal/adapter/gin/router"
	"layered-user-service/internal/adapter/ratelimit"
	"layered-user-service/internal/config"
	usersvc "layered-user-service/internal/service/user"
)

// Server holds the transports enabled by configuration.
// Gin always runs; gRPC and the REST gateway are optional.
type Server struct {
	Config  *config.Config
	Logger  *zap.Logger
	Gin     *http.Server
	GRPC    *grpc.Server
	Gateway *http.Server

	gatewayConn *grpc.ClientConn
	ginLis      net.Listener
	grpcLis     net.Listener
	gatewayLis  net.Listener
}

// New creates a new server instance
func New(
	cfg *config.Config,
	l *zap.Logger,
	handler *ginhandler.UserHandler,
	svc usersvc.Service,
	limiter *ratelimit.Limiter,
) *Server {
	s := &Server{
		Config: cfg,
		Logger: l,
		Gin: SetupGinServer(handler, limiter, ginrouter.Options{
			ServiceName:    cfg.Logger.ServiceName,
			SwaggerEnabled: cfg.App.SwaggerEnabled,
		}, l),
	}
	if cfg.App.GRPCEnabled {
		s.GRPC = SetupGRPC(svc, limiter, l)
	}
	return s
}

// Listen binds every enabled server to its port.
// Bind failures are reported here so startup can fail before anything is served.
func (s *Server) Listen(ctx context.Context) error {
	lc := net.ListenConfig{}

	var err error
	s.ginLis, err = lc.Listen(ctx, "tcp", ":"+s.Config.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("failed to listen on HTTP port %s: %w", s.Config.App.HTTPPort, err)
	}

	if s.GRPC == nil {
		return nil
	}

	s.grpcLis, err = lc.Listen(ctx, "tcp", ":"+s.Config.App.GRPCPort)
	if err != nil {
		s.closeListeners()
		return fmt.Errorf("failed to listen on gRPC port %s: %w", s.Config.App.GRPCPort, err)
	}

	if !s.Config.App.GatewayEnabled {
		return nil
	}

	_, port, err := net.SplitHostPort(s.grpcLis.Addr().String())
	if err != nil {
		s.closeListeners()
		return fmt.Errorf("failed to resolve gRPC address: %w", err)
	}
	s.Gateway, s.gatewayConn, err = SetupHTTPGateway(net.JoinHostPort("localhost", port), s.Logger)
	if err != nil {
		s.closeListeners()
		return err
	}

	s.gatewayLis, err = lc.Listen(ctx, "tcp", ":"+s.Config.App.GatewayPort)
	if err != nil {
		s.closeListeners()
		_ = s.gatewayConn.Close()
		return fmt.Errorf("failed to listen on gateway port %s: %w", s.Config.App.GatewayPort, err)
	}

	return nil
}

// Serve runs the bound servers until ctx is cancelled or one of them fails,
// then shuts all of them down.
func (s *Server) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info("Gin REST API running", zap.String("address", s.ginLis.Addr().String()))
		return serveHTTP(s.Gin, s.ginLis)
	})

	if s.grpcLis != nil {
		g.Go(func() error {
			s.Logger.Info("gRPC server running", zap.String("address", s.grpcLis.Addr().String()))
			if err := s.GRPC.Serve(s.grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("gRPC server: %w", err)
			}
			return nil
		})
	}

	if s.gatewayLis != nil {
		g.Go(func() error {
			s.Logger.Info("REST gateway running", zap.String("address", s.gatewayLis.Addr().String()))
			return serveHTTP(s.Gateway, s.gatewayLis)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

// Run binds and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(ctx); err != nil {
		return err
	}
	return s.Serve(ctx)
}

func serveHTTP(srv *http.Server, lis net.Listener) error {
	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server: %w", err)
	}
	return nil
}

// Shutdown stops every server, waiting up to the configured timeout for in-flight requests.
func (s *Server) Shutdown() error {
	timeout := time.Duration(s.Config.App.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.Logger.Info("starting graceful shutdown",
		zap.Int("timeout_seconds", s.Config.App.ShutdownTimeoutSeconds),
	)

	var errs []error

	// Gateway first; it forwards to the gRPC server
	if s.Gateway != nil {
		s.Logger.Info("shutting down REST gateway...")
		if err := s.Gateway.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("gateway shutdown: %w", err))
		}
	}
	if s.gatewayConn != nil {
		if err := s.gatewayConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("gateway connection close: %w", err))
		}
	}

	if s.Gin != nil {
		s.Logger.Info("shutting down Gin server...")
		if err := s.Gin.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("gin shutdown: %w", err))
		}
	}

	if s.GRPC != nil {
		s.Logger.Info("shutting down gRPC server...")
		stopped := make(chan struct{})
		go func() {
			s.GRPC.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			s.GRPC.Stop()
		}
	}

	return errors.Join(errs...)
}

func (s *Server) closeListeners() {
	for _, lis := range []net.Listener{s.ginLis, s.grpcLis, s.gatewayLis} {
		if lis != nil {
			_ = lis.Close()
		}
	}
}

// GinAddr returns the bound Gin address, or "" before Listen.
func (s *Server) GinAddr() string {
	return addr(s.ginLis)
}

// GRPCAddr returns the bound gRPC address, or "" when gRPC is disabled.
func (s *Server) GRPCAddr() string {
	return addr(s.grpcLis)
}

// GatewayAddr returns the bound gateway address, or "" when the gateway is disabled.
func (s *Server) GatewayAddr() string {
	return addr(s.gatewayLis)
}

func addr(lis net.Listener) string {
	if lis == nil {
		return ""
	}
	return lis.Addr().String()
}
