package security

import (
	"time"

	"clinic-core/internal/app/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSHandler is a distinct type so fx can provide it alongside other
// gin.HandlerFunc values.
type CORSHandler gin.HandlerFunc

// CORSMiddleware configures CORS for the browser client. Credentials stay
// enabled because the session rides in a cookie.
func CORSMiddleware(appConfig *config.Config) CORSHandler {
	corsConfig := appConfig.GetCORS()

	return CORSHandler(cors.New(cors.Config{
		AllowOrigins:     corsConfig.AllowedOrigins,
		AllowMethods:     corsConfig.AllowedMethods,
		AllowHeaders:     corsConfig.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           time.Duration(corsConfig.MaxAge) * time.Second,
	}))
}
