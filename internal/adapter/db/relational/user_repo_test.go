package relational

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc/codes"
	"gorm.io/gorm"

	domain "layered-user-service/internal/domain/user"
	apperrors "layered-user-service/pkg/errors"
	"layered-user-service/pkg/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.NewGormLogger(zaptest.NewLogger(t), 0.2, "warn"),
	})
	require.NoError(t, err)

	// Each new connection to :memory: is a fresh database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func setupRepo(t *testing.T) (*UserRepo, *gorm.DB) {
	db := setupTestDB(t)
	return NewUserRepo(db, zaptest.NewLogger(t)), db
}

func TestUserRepo_CreateThenFindByID(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	in := &domain.User{ID: 1712345678901, Name: "Alice", Email: "alice@x.com"}
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Same(t, in, created)

	found, err := repo.FindByID(ctx, in.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *in, *found)
}

func TestUserRepo_FindByID_Absent(t *testing.T) {
	repo, _ := setupRepo(t)

	found, err := repo.FindByID(context.Background(), 404)

	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRepo_DuplicateIDs(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{ID: 9, Name: "First", Email: "first@x.com"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{ID: 9, Name: "Second", Email: "second@x.com"})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "First", found.Name)
}

func TestUserRepo_FindAll_InsertionOrder(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := repo.Create(ctx, &domain.User{ID: int64(100 - i), Name: fmt.Sprintf("user-%d", i)})
		require.NoError(t, err)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, u := range all {
		assert.Equal(t, fmt.Sprintf("user-%d", i), u.Name)
		assert.Equal(t, int64(100-i), u.ID)
	}
}

func TestUserRepo_Create_Nil(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Create(context.Background(), nil)

	assert.Error(t, err)
}

func TestUserRepo_StorageFailure(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, db.Migrator().DropTable(&UserSchema{}))

	_, err := repo.Create(ctx, &domain.User{ID: 1, Name: "Alice"})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, apperrors.Code(err))

	_, err = repo.FindByID(ctx, 1)
	assert.Equal(t, codes.Internal, apperrors.Code(err))

	_, err = repo.FindAll(ctx)
	assert.Equal(t, codes.Internal, apperrors.Code(err))
}
