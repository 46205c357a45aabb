package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"clinic-core/internal/modules/auth/controllers"
	"clinic-core/internal/modules/auth/repository"
	"clinic-core/internal/modules/auth/services"
	authMiddleware "clinic-core/internal/shared/middleware/auth"
)

// Module groups every provider of the auth domain.
var Module = fx.Options(
	fx.Provide(repository.NewUserRepository),
	fx.Provide(services.NewSessionService),
	fx.Provide(services.NewAuthService),

	fx.Provide(controllers.NewAuthController),

	fx.Invoke(RegisterAuthRoutes),
)

// RegisterAuthRoutes wires the gin routes of the auth domain.
func RegisterAuthRoutes(
	r *gin.Engine,
	authController *controllers.AuthController,
	sessionMiddleware *authMiddleware.SessionMiddleware,
) {
	authAPI := r.Group("/api/auth")
	authAPI.Use(sessionMiddleware.Handler())
	{
		authAPI.POST("/signup", authController.Signup)
		authAPI.POST("/login", authController.Login)

		authAPI.POST("/logout", authMiddleware.RequireAuth(), authController.Logout)
		authAPI.GET("/me", authMiddleware.RequireAuth(), authController.Me)
	}
}
