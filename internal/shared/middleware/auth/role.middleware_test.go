package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-core/internal/modules/auth/dto"

	"github.com/gin-gonic/gin"
)

func setUser(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserKey, &dto.UserData{ID: "u1", Email: "a@b.com", Role: role})
		c.Next()
	}
}

func performRequest(handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/protected", chain...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthAnonymous(t *testing.T) {
	w := performRequest(RequireAuth())
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthAuthenticated(t *testing.T) {
	w := performRequest(setUser("assistant"), RequireAuth())
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireAuthRoles(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
	}{
		{"admin allowed", "admin", []string{"admin", "doctor"}, http.StatusOK},
		{"doctor allowed", "doctor", []string{"admin", "doctor"}, http.StatusOK},
		{"nurse rejected", "nurse", []string{"admin", "doctor"}, http.StatusForbidden},
		{"assistant rejected", "assistant", []string{"admin", "doctor"}, http.StatusForbidden},
		{"any role with empty list", "nurse", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(setUser(tt.role), RequireAuth(tt.allowed...))
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Error("CurrentUser reported a user on an empty context")
	}

	c.Set(ContextUserKey, &dto.UserData{ID: "u1", Role: "doctor"})
	user, ok := CurrentUser(c)
	if !ok || user.ID != "u1" {
		t.Errorf("CurrentUser() = %+v, %v", user, ok)
	}

	c.Set(ContextUserKey, "not-a-user")
	if _, ok := CurrentUser(c); ok {
		t.Error("CurrentUser accepted a value of the wrong type")
	}
}
