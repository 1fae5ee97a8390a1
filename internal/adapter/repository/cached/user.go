package cached

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"layered-user-service/internal/adapter/cache"
	domain "layered-user-service/internal/domain/user"
	"layered-user-service/internal/usecase/user"
	"layered-user-service/pkg/logger"
)

// UserRepository implements user.Repository with a cache in front of FindByID.
// Absent users are never cached, so a later Create becomes visible immediately.
type UserRepository struct {
	store user.Repository
	cache cache.UserCache
	log   *zap.Logger
	group singleflight.Group
}

// NewUserRepository wraps store with c. A nil cache disables caching.
func NewUserRepository(store user.Repository, c cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		store: store,
		cache: c,
		log:   log,
	}
}

// Create delegates to the underlying store.
// The cache is filled lazily by FindByID so the first user with an id stays authoritative.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.store.Create(ctx, u)
}

// FindAll delegates to the underlying store.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.store.FindAll(ctx)
}

// FindByID retrieves a user by ID using the cache-aside pattern.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.WithContext(ctx, r.log)

	if u := r.fromCache(ctx, log, id); u != nil {
		return u, nil
	}

	// Collapse concurrent misses for the same id into one store read
	result, err, _ := r.group.Do(strconv.FormatInt(id, 10), func() (any, error) {
		if u := r.fromCache(ctx, log, id); u != nil {
			return u, nil
		}

		u, err := r.store.FindByID(ctx, id)
		if err != nil || u == nil {
			return u, err
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u, _ := result.(*domain.User)
	if u == nil {
		return nil, nil
	}
	// Callers sharing a singleflight result must not alias each other
	clone := *u
	return &clone, nil
}

func (r *UserRepository) fromCache(ctx context.Context, log *zap.Logger, id int64) *domain.User {
	if r.cache == nil {
		return nil
	}
	u, err := r.cache.Get(ctx, id)
	if err != nil {
		log.Warn("cache get error, falling back to store", zap.Int64("id", id), zap.Error(err))
		return nil
	}
	return u
}
