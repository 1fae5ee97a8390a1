package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"layered-user-service/cmd/api/infrastructure"
	"layered-user-service/internal/adapter/cache"
	"layered-user-service/internal/adapter/db/relational"
	ginhandler "layered-user-service/internal/adapter/gin/handler"
	"layered-user-service/internal/adapter/ratelimit"
	"layered-user-service/internal/adapter/repository/cached"
	"layered-user-service/internal/adapter/repository/memory"
	"layered-user-service/internal/config"
	usersvc "layered-user-service/internal/service/user"
	"layered-user-service/internal/usecase/user"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *goredis.Client
	Repository  user.Repository
	UserService usersvc.Service
	RateLimiter *ratelimit.Limiter
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	repo, err := c.newRepository()
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		userCache := cache.NewRedisUserCache(rdb, time.Duration(cfg.Redis.CacheTTL)*time.Second, l)
		repo = cached.NewUserRepository(repo, userCache, l)

		c.RateLimiter = ratelimit.New(rdb, ratelimit.Config{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		}, l)
	}

	c.Repository = repo
	c.UserService = usersvc.New(user.New(repo, l))
	c.GinHandler = ginhandler.NewUserHandler(c.UserService, l)

	l.Info("container initialized",
		zap.String("repository_driver", cfg.App.RepositoryDriver),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("rate_limit_enabled", c.RateLimiter.Enabled()),
	)

	return c, nil
}

// newRepository builds the store selected by REPOSITORY_DRIVER.
func (c *Container) newRepository() (user.Repository, error) {
	if c.Config.App.RepositoryDriver == config.DriverMemory {
		return memory.NewUserRepository(c.Logger), nil
	}

	db, err := infrastructure.NewDatabase(c.Config, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	return relational.NewUserRepo(db, c.Logger), nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		c.Logger.Info("closing Redis connection")
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
