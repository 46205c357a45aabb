package auth

import (
	"clinic-core/internal/app/config"
	"clinic-core/internal/modules/auth/dto"
	"clinic-core/internal/modules/auth/services"

	"github.com/gin-gonic/gin"
)

// Context keys populated by the session middleware.
const (
	ContextUserKey    = "user"
	ContextSessionKey = "session"
)

type SessionMiddleware struct {
	authService *services.AuthService
	cookieName  string
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(authService *services.AuthService, cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		authService: authService,
		cookieName:  cfg.Session.CookieName,
	}
}

// Handler resolves the session cookie into a user and enriches the gin
// context. Anonymous requests pass through untouched; rejecting them is the
// role middleware's job.
func (m *SessionMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, session, _ := m.authService.ValidateSession(c.Request.Context(), token)
		if user != nil {
			c.Set(ContextUserKey, user)
			c.Set(ContextSessionKey, session)
		}

		c.Next()
	}
}

// CurrentUser extracts the authenticated user from the gin context.
func CurrentUser(c *gin.Context) (*dto.UserData, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*dto.UserData)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
