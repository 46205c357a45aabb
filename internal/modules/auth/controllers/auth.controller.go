package controllers

import (
	"net/http"

	"clinic-core/internal/app/config"
	"clinic-core/internal/modules/auth/dto"
	"clinic-core/internal/modules/auth/services"
	"clinic-core/internal/shared/apperrors"
	authMiddleware "clinic-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthController creates a new authentication controller.
func NewAuthController(authService *services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		authService: authService,
		cfg:         cfg,
	}
}

// Signup - POST /api/auth/signup
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, http.StatusBadRequest, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "Email and password are required"},
		}))
		return
	}

	user, err := c.authService.Signup(ctx.Request.Context(), req)
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login - POST /api/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, http.StatusBadRequest, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "Email and password are required"},
		}))
		return
	}

	token, user, err := c.authService.Login(
		ctx.Request.Context(),
		req,
		ctx.ClientIP(),
		ctx.GetHeader("User-Agent"),
	)
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token, int(c.cfg.Session.TTL.Seconds()))

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"user":    user,
	})
}

// Logout - POST /api/auth/logout
func (c *AuthController) Logout(ctx *gin.Context) {
	token, _ := ctx.Cookie(c.cfg.Session.CookieName)
	if token != "" {
		// Logout is idempotent server-side; an unknown token still clears
		// the cookie below.
		c.authService.Logout(ctx.Request.Context(), token)
	}

	c.setSessionCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me - GET /api/auth/me
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := authMiddleware.CurrentUser(ctx)
	if !ok {
		apperrors.Respond(ctx, http.StatusUnauthorized, apperrors.Unauthorized())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// setSessionCookie writes the HTTP-only session cookie: SameSite=Lax,
// Secure in production, path /.
func (c *AuthController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(
		c.cfg.Session.CookieName,
		token,
		maxAge,
		"/",
		"",
		c.cfg.IsProduction(),
		true,
	)
}
