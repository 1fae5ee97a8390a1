package user

import (
	"context"

	domain "layered-user-service/internal/domain/user"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (in-memory, PostgreSQL, SQLite) to be used interchangeably.
type Repository interface {
	FindAll(ctx context.Context) ([]domain.User, error)               // All users in insertion order
	FindByID(ctx context.Context, id int64) (*domain.User, error)     // First user with id, or nil when absent
	Create(ctx context.Context, u *domain.User) (*domain.User, error) // Append user and return it unchanged
}

// Creator defines the create-user business operation.
type Creator interface {
	Execute(ctx context.Context, in CreateUserRequest) (*domain.User, error)
}
