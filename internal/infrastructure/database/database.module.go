package database

import (
	"clinic-core/internal/infrastructure/database/mongodb"
	"clinic-core/internal/infrastructure/database/redis"

	"go.uber.org/fx"
)

// Module groups every storage client used by the application.
var Module = fx.Options(
	mongodb.Module,
	redis.Module,
)
