package auth

import (
	"net/http"

	"clinic-core/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

// RequireAuth gates a route on authentication and, when roles are given, on
// role membership: absent user yields 401, present user outside the allowed
// set 403. With no roles listed, any authenticated user passes.
func RequireAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.Respond(c, http.StatusUnauthorized, apperrors.Unauthorized())
			return
		}

		if len(roles) > 0 && !contains(roles, user.Role) {
			apperrors.Respond(c, http.StatusForbidden, apperrors.Forbidden())
			return
		}

		c.Next()
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
