package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clinic-core/internal/app/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Application owns the HTTP server lifecycle.
type Application struct {
	config *config.Config
	router *gin.Engine
	server *http.Server
}

// NewApplication creates a new application instance.
func NewApplication(cfg *config.Config, router *gin.Engine) *Application {
	return &Application{
		config: cfg,
		router: router,
	}
}

// Start registers the HTTP server on the fx lifecycle.
func (a *Application) Start(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			a.server = &http.Server{
				Addr:         fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
				Handler:      a.router,
				ReadTimeout:  a.config.Server.ReadTimeout,
				WriteTimeout: a.config.Server.WriteTimeout,
			}

			go func() {
				fmt.Printf("[SERVER] Listening on %s:%d\n", a.config.Server.Host, a.config.Server.Port)
				if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					fmt.Printf("[SERVER] Server failed: %v\n", err)
				}
			}()

			fmt.Printf("[SERVER] HTTP server initialized (env: %s)\n", a.config.Environment)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			fmt.Printf("[SERVER] Shutting down HTTP server\n")

			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := a.server.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("[SERVER] Forced shutdown: %v\n", err)
				return err
			}

			fmt.Printf("[SERVER] Server stopped cleanly\n")
			return nil
		},
	})
}

// IsProduction reports whether the application runs in production mode.
func (a *Application) IsProduction() bool {
	return a.config.IsProduction()
}
