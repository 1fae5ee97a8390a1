package user

import (
	"context"

	"go.uber.org/zap"

	domain "layered-user-service/internal/domain/user"
	"layered-user-service/pkg/logger"
)

// Usecase implements the create-user operation.
// It builds the entity and hands persistence to the repository.
type Usecase struct {
	repo Repository  // Repository for data access
	ids  IDGenerator // Source of new user identities
	log  *zap.Logger // Logger for structured logging
}

// Option configures a Usecase.
type Option func(*Usecase)

// WithIDGenerator replaces the default timestamp id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(uc *Usecase) {
		if g != nil {
			uc.ids = g
		}
	}
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger, opts ...Option) *Usecase {
	uc := &Usecase{repo: r, ids: TimestampID, log: log}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute creates a user with a fresh identity and stores it.
// Repository failures are returned as-is.
func (uc *Usecase) Execute(ctx context.Context, in CreateUserRequest) (*domain.User, error) {
	log := logger.WithContext(ctx, uc.log)

	u := domain.New(uc.ids(), in.Name, in.Email)
	log.Info("creating user", zap.Int64("id", u.ID), zap.String("name", u.Name), zap.String("email", u.Email))

	created, err := uc.repo.Create(ctx, u)
	if err != nil {
		log.Error("failed to create user", zap.Int64("id", u.ID), zap.Error(err))
		return nil, err
	}
	return created, nil
}
