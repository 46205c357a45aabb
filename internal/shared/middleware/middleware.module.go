package middleware

import (
	authMiddleware "clinic-core/internal/shared/middleware/auth"
	"clinic-core/internal/shared/middleware/security"

	"go.uber.org/fx"
)

// Module groups the shared request middlewares.
var Module = fx.Options(
	fx.Provide(authMiddleware.NewSessionMiddleware),
	fx.Provide(security.CORSMiddleware),
)
