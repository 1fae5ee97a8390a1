package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcadapter "layered-user-service/internal/adapter/grpc"
	domain "layered-user-service/internal/domain/user"
	apperrors "layered-user-service/pkg/errors"
	"layered-user-service/pkg/logger"
)

// createUserJSON is the POST /users request body.
type createUserJSON struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// errorJSON is the REST error body, shared in shape with the Gin transport.
type errorJSON struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// userJSON is the REST representation of a user.
type userJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Gateway exposes user.v1.UserService as REST through a grpc-gateway mux.
type Gateway struct {
	mux    *runtime.ServeMux
	client *grpcadapter.Client
	log    *zap.Logger
}

// New builds the REST routes on top of a gRPC client connection.
func New(cc grpc.ClientConnInterface, log *zap.Logger) (*Gateway, error) {
	g := &Gateway{
		mux: runtime.NewServeMux(
			runtime.WithIncomingHeaderMatcher(headerMatcher),
			runtime.WithErrorHandler(errorHandler),
		),
		client: grpcadapter.NewClient(cc),
		log:    log,
	}

	routes := []struct {
		method, path string
		h            runtime.HandlerFunc
	}{
		{http.MethodPost, "/users", g.createUser},
		{http.MethodGet, "/users", g.sampleUser},
	}
	for _, r := range routes {
		if err := g.mux.HandlePath(r.method, r.path, r.h); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ServeHTTP implements http.Handler.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mux.ServeHTTP(w, r)
}

// headerMatcher forwards the request ID alongside the default permanent headers.
func headerMatcher(key string) (string, bool) {
	if strings.EqualFold(key, logger.RequestIDHeader) {
		return strings.ToLower(logger.RequestIDHeader), true
	}
	return runtime.DefaultHeaderMatcher(key)
}

// annotate copies forwarding headers and the request ID into outgoing gRPC metadata.
func (g *Gateway) annotate(r *http.Request, fullMethod string) (context.Context, error) {
	return runtime.AnnotateContext(r.Context(), g.mux, r, fullMethod, runtime.WithHTTPPathPattern("/users"))
}

func (g *Gateway) createUser(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	inbound, outbound := runtime.MarshalerForRequest(g.mux, r)

	// An empty body creates a user with empty fields
	var body createUserJSON
	if err := inbound.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		g.fail(w, r, outbound, apperrors.NewValidationError("body", err.Error()))
		return
	}

	ctx, err := g.annotate(r, grpcadapter.CreateUserFullMethod)
	if err != nil {
		g.fail(w, r, outbound, err)
		return
	}

	u, err := g.client.CreateUser(ctx, body.Name, body.Email)
	if err != nil {
		g.fail(w, r, outbound, err)
		return
	}
	g.write(w, r, outbound, http.StatusCreated, u)
}

func (g *Gateway) sampleUser(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	_, outbound := runtime.MarshalerForRequest(g.mux, r)

	ctx, err := g.annotate(r, grpcadapter.SampleUserFullMethod)
	if err != nil {
		g.fail(w, r, outbound, err)
		return
	}

	u, err := g.client.SampleUser(ctx)
	if err != nil {
		g.fail(w, r, outbound, err)
		return
	}
	g.write(w, r, outbound, http.StatusOK, u)
}

func (g *Gateway) write(w http.ResponseWriter, r *http.Request, m runtime.Marshaler, code int, u *domain.User) {
	resp := userJSON{ID: u.ID, Name: u.Name, Email: u.Email}
	buf, err := m.Marshal(resp)
	if err != nil {
		g.fail(w, r, m, err)
		return
	}

	w.Header().Set("Content-Type", m.ContentType(resp))
	w.WriteHeader(code)
	if _, err := w.Write(buf); err != nil {
		logger.WithContext(r.Context(), g.log).Warn("failed to write gateway response", zap.Error(err))
	}
}

func (g *Gateway) fail(w http.ResponseWriter, r *http.Request, m runtime.Marshaler, err error) {
	logger.WithContext(r.Context(), g.log).Warn("gateway request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	runtime.HTTPError(r.Context(), g.mux, m, w, r, err)
}

// errorHandler renders errors as {"error","message"} with the HTTP status of their gRPC code.
func errorHandler(_ context.Context, _ *runtime.ServeMux, m runtime.Marshaler, w http.ResponseWriter, _ *http.Request, err error) {
	body := errorJSON{
		Error:   apperrors.Kind(err),
		Message: apperrors.PublicMessage(err),
	}
	buf, merr := m.Marshal(body)
	if merr != nil {
		buf = []byte(`{"error":"internal_error"}`)
	}

	w.Header().Set("Content-Type", m.ContentType(body))
	w.WriteHeader(apperrors.HTTPStatus(err))
	_, _ = w.Write(buf)
}
