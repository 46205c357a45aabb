package app

import (
	"net/http"

	"clinic-core/internal/app/config"
	"clinic-core/internal/infrastructure/database/mongodb"
	"clinic-core/internal/infrastructure/database/redis"
	"clinic-core/internal/infrastructure/logger"
	"clinic-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the shared middleware chain and the
// liveness and readiness probes. Domain routes register themselves through
// their fx modules.
func NewRouter(
	cfg *config.Config,
	loggerMiddleware *logger.LoggerMiddleware,
	corsHandler security.CORSHandler,
	mongoClient *mongodb.Client,
	redisClient *redis.Client,
) *gin.Engine {
	configureGinMode(cfg.Environment)

	r := gin.New()

	r.Use(loggerMiddleware.GinLogger())
	r.Use(loggerMiddleware.GinRecovery())
	r.Use(gin.HandlerFunc(corsHandler))

	// Liveness: the process is up
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"environment": cfg.Environment,
		})
	})

	// Readiness: both backing stores answer
	r.GET("/ready", func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := mongoClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"mongo":  err.Error(),
			})
			return
		}
		if err := redisClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"redis":  err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return r
}

// configureGinMode selects the gin mode for the environment.
func configureGinMode(environment string) {
	switch environment {
	case "production", "staging":
		gin.SetMode(gin.ReleaseMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
