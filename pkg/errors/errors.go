package errors

import (
	"errors"
	"fmt"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ValidationError represents a malformed request
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// GRPCStatus returns the gRPC status for this error
func (e *ValidationError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// InternalError represents a storage or infrastructure failure
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// GRPCStatus returns the gRPC status for this error.
// The wrapped cause is kept out of the status message.
func (e *InternalError) GRPCStatus() *status.Status {
	return status.New(codes.Internal, e.Message)
}

// GRPCStatuser is implemented by errors that carry a gRPC status
type GRPCStatuser interface {
	GRPCStatus() *status.Status
}

// Code returns the gRPC code carried by err.
// Errors without a status are treated as internal.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	var s GRPCStatuser
	if errors.As(err, &s) {
		return s.GRPCStatus().Code()
	}
	return codes.Internal
}

// HTTPStatus maps err to an HTTP status code through its gRPC code.
func HTTPStatus(err error) int {
	return runtime.HTTPStatusFromCode(Code(err))
}

// PublicMessage returns the message safe to show to clients.
func PublicMessage(err error) string {
	var s GRPCStatuser
	if errors.As(err, &s) {
		return s.GRPCStatus().Message()
	}
	return "an internal error occurred"
}

// Kind returns the short error identifier used in REST error bodies.
func Kind(err error) string {
	switch Code(err) {
	case codes.InvalidArgument:
		return "invalid_request"
	case codes.NotFound:
		return "not_found"
	case codes.Unimplemented:
		return "method_not_allowed"
	case codes.ResourceExhausted:
		return "rate_limit_exceeded"
	case codes.Unavailable:
		return "unavailable"
	default:
		return "internal_error"
	}
}
