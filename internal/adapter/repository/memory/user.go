package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domain "layered-user-service/internal/domain/user"
)

// UserRepository keeps users in process memory in insertion order.
// Nothing survives a restart.
type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
	log   *zap.Logger
}

// NewUserRepository creates an empty in-memory repository.
func NewUserRepository(log *zap.Logger) *UserRepository {
	return &UserRepository{log: log}
}

// FindAll returns a snapshot of every stored user in insertion order.
func (r *UserRepository) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, len(r.users))
	copy(users, r.users)
	return users, nil
}

// FindByID returns the first user stored with id, or nil when there is none.
func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// Create appends u and returns it unchanged. Duplicate ids are accepted.
func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	r.users = append(r.users, *u)
	count := len(r.users)
	r.mu.Unlock()

	r.log.Debug("user stored in memory", zap.Int64("id", u.ID), zap.Int("count", count))
	return u, nil
}
