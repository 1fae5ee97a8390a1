package user

import (
	"context"

	domain "layered-user-service/internal/domain/user"
	usecase "layered-user-service/internal/usecase/user"
)

// Service is the application facade exposed to the transport adapters.
type Service interface {
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)
}

// UserService forwards calls to the create-user use case.
type UserService struct {
	createUser usecase.Creator
}

// New creates a UserService backed by the given use case.
func New(createUser usecase.Creator) *UserService {
	return &UserService{createUser: createUser}
}

// CreateUser forwards to the create-user use case.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	return s.createUser.Execute(ctx, usecase.CreateUserRequest{Name: name, Email: email})
}
