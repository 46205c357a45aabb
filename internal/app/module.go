package app

import (
	"clinic-core/internal/app/bootstrap"
	"clinic-core/internal/app/config"
	"clinic-core/internal/infrastructure/database"
	"clinic-core/internal/infrastructure/database/redis"
	"clinic-core/internal/infrastructure/logger"
	"clinic-core/internal/modules/auth"
	"clinic-core/internal/modules/patients"
	"clinic-core/internal/shared/middleware"

	"go.uber.org/fx"
)

// NewRedisKeyGenerator builds the Redis key generator from the environment.
func NewRedisKeyGenerator(cfg *config.Config) *redis.RedisKeyGenerator {
	return redis.NewRedisKeyGenerator(cfg.Environment)
}

var AppModule = fx.Options(
	// Configuration comes first
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewMongoConfig),
	fx.Provide(config.NewRedisConfig),

	// Shared utilities
	fx.Provide(NewRedisKeyGenerator),

	// Infrastructure
	database.Module,
	logger.Module,

	// Shared middleware
	middleware.Module,

	// Domain modules
	auth.Module,
	patients.Module,

	// Bootstrap providers
	fx.Provide(bootstrap.NewIndexManager),
	fx.Provide(bootstrap.NewSeedingManager),
	fx.Provide(bootstrap.NewBootstrapSystem),

	// Router
	fx.Provide(NewRouter),

	// Application
	fx.Provide(NewApplication),

	// Lifecycle: bootstrap runs before the HTTP server starts
	fx.Invoke(bootstrap.RegisterBootstrapLifecycle),
	fx.Invoke((*Application).Start),
)
