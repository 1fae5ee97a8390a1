package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "layered-user-service/internal/domain/user"
	usersvc "layered-user-service/internal/service/user"
	apperrors "layered-user-service/pkg/errors"
	"layered-user-service/pkg/logger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	svc usersvc.Service
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(svc usersvc.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{
		svc: svc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Both fields are optional and unvalidated.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithContext(ctx, h.log)

	var req CreateUserRequest
	// An empty body creates a user with empty fields
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("invalid create user request", zap.Error(err))
		h.handleError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	u, err := h.svc.CreateUser(ctx, req.Name, req.Email)
	if err != nil {
		log.Error("create user failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(u))
}

// SampleUser handles GET /users.
// Every call creates and returns a new "John Doe" user; the request is ignored.
func (h *UserHandler) SampleUser(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := h.svc.CreateUser(ctx, domain.SampleName, domain.SampleEmail)
	if err != nil {
		logger.WithContext(ctx, h.log).Error("sample user failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}

// handleError converts lower layer errors to HTTP responses using their gRPC code.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), ErrorResponse{
		Error:   apperrors.Kind(err),
		Message: apperrors.PublicMessage(err),
	})
}
