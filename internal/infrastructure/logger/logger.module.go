package logger

import (
	"clinic-core/internal/app/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(NewMiddleware),
	fx.Provide(NewLogger),
)

func NewMiddleware() *LoggerMiddleware {
	return &LoggerMiddleware{}
}

// NewLogger builds the zap logger injected into domain services.
func NewLogger(cfg *config.Config, lc fx.Lifecycle) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
	}))

	return logger, nil
}
