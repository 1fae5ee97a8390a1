package relational

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "layered-user-service/internal/domain/user"
	apperrors "layered-user-service/pkg/errors"
	"layered-user-service/pkg/logger"
)

// UserRepo implements the user Repository on top of GORM.
// It works with any GORM dialector; PostgreSQL and SQLite are wired in.
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
// RowID fixes insertion order; UserID is the domain id and is not unique.
type UserSchema struct {
	RowID  int64  `gorm:"column:row_id;primaryKey;autoIncrement"`
	UserID int64  `gorm:"column:user_id;not null;index"`
	Name   string `gorm:"column:name;not null"`
	Email  string `gorm:"column:email;not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Migrate creates or updates the users table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserSchema{})
}

func (m UserSchema) toDomain() domain.User {
	return domain.User{ID: m.UserID, Name: m.Name, Email: m.Email}
}

// Create inserts a new row for u and returns u unchanged.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, apperrors.NewInternalError("user cannot be nil", nil)
	}

	model := UserSchema{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to create user in db", zap.Int64("id", u.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	logger.WithContext(ctx, r.log).Info("user created in db", zap.Int64("id", u.ID), zap.Int64("row_id", model.RowID))
	return u, nil
}

// FindByID retrieves the earliest stored user with id.
// It returns nil without error when no row matches.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var model UserSchema
	err := r.db.WithContext(ctx).Where("user_id = ?", id).Order("row_id").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithContext(ctx, r.log).Debug("user not found", zap.Int64("id", id))
			return nil, nil
		}
		logger.WithContext(ctx, r.log).Error("failed to get user from db", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	u := model.toDomain()
	return &u, nil
}

// FindAll retrieves every user in insertion order.
func (r *UserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("row_id").Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list users", err)
	}

	users := make([]domain.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}
	return users, nil
}
