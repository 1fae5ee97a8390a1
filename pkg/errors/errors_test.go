package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("body", "malformed JSON")

	assert.Equal(t, "validation failed: body - malformed JSON", err.Error())
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestInternalError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("failed to create user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to create user: connection refused", err.Error())
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "failed to create user", PublicMessage(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestCode(t *testing.T) {
	wrapped := fmt.Errorf("usecase: %w", NewValidationError("", "bad"))

	assert.Equal(t, codes.OK, Code(nil))
	assert.Equal(t, codes.InvalidArgument, Code(wrapped))
	assert.Equal(t, codes.Internal, Code(errors.New("plain")))
}

func TestPublicMessage_HidesPlainErrors(t *testing.T) {
	assert.Equal(t, "an internal error occurred", PublicMessage(errors.New("secret dsn")))
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", NewValidationError("body", "bad"), "invalid_request"},
		{"internal", NewInternalError("boom", nil), "internal_error"},
		{"plain", errors.New("boom"), "internal_error"},
		{"not found status", status.Error(codes.NotFound, "no route"), "not_found"},
		{"unimplemented status", status.Error(codes.Unimplemented, "method"), "method_not_allowed"},
		{"rate limited status", status.Error(codes.ResourceExhausted, "slow down"), "rate_limit_exceeded"},
		{"unavailable status", status.Error(codes.Unavailable, "down"), "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}
