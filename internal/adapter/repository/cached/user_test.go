package cached

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"layered-user-service/internal/adapter/cache"
	"layered-user-service/internal/adapter/repository/memory"
	domain "layered-user-service/internal/domain/user"
)

type fixture struct {
	repo  *UserRepository
	store *memory.UserRepository
	mr    *miniredis.Miniredis
}

func setup(t *testing.T) fixture {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	store := memory.NewUserRepository(log)
	c := cache.NewRedisUserCache(client, time.Minute, log)

	return fixture{
		repo:  NewUserRepository(store, c, log),
		store: store,
		mr:    mr,
	}
}

func TestFindByID_PopulatesCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.repo.Create(ctx, &domain.User{ID: 1, Name: "Alice", Email: "alice@x.com"})
	require.NoError(t, err)
	assert.False(t, f.mr.Exists(cache.Key(1)), "create must not write through")

	found, err := f.repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Alice", found.Name)
	assert.True(t, f.mr.Exists(cache.Key(1)))
}

func TestFindByID_ServedFromCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.mr.Set(cache.Key(2), `{"id":2,"name":"Cached","email":"c@x.com"}`))

	found, err := f.repo.FindByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Cached", found.Name)
}

func TestFindByID_AbsentNotCached(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	found, err := f.repo.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.False(t, f.mr.Exists(cache.Key(3)))

	_, err = f.repo.Create(ctx, &domain.User{ID: 3, Name: "Late"})
	require.NoError(t, err)

	found, err = f.repo.FindByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Late", found.Name)
}

func TestFindByID_RedisDownFallsBack(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.repo.Create(ctx, &domain.User{ID: 4, Name: "Alice"})
	require.NoError(t, err)
	f.mr.Close()

	found, err := f.repo.FindByID(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Alice", found.Name)
}

func TestFindAll_Delegates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, _ = f.repo.Create(ctx, &domain.User{ID: 1})
	_, _ = f.repo.Create(ctx, &domain.User{ID: 2})

	all, err := f.repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNilCache(t *testing.T) {
	log := zaptest.NewLogger(t)
	repo := NewUserRepository(memory.NewUserRepository(log), nil, log)
	ctx := context.Background()

	_, _ = repo.Create(ctx, &domain.User{ID: 1, Name: "Alice"})

	found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
}
