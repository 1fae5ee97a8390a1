package server

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"layered-user-service/internal/adapter/gateway"
)

// SetupHTTPGateway dials the gRPC server at grpcAddr and serves its REST mapping.
// The returned connection must be closed after the server shuts down.
func SetupHTTPGateway(grpcAddr string, l *zap.Logger) (*http.Server, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial gRPC server: %w", err)
	}

	gw, err := gateway.New(conn, l)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to register gateway: %w", err)
	}

	return &http.Server{
		Handler:           gw,
		ReadHeaderTimeout: 2 * time.Second,
	}, conn, nil
}
