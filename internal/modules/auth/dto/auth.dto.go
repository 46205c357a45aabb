package dto

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserData holds the public fields of a user. The password hash never
// leaves the service layer.
type UserData struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// SessionData is the session record stored as a Redis hash.
type SessionData struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IPAddress    string `json:"ip_address"`
	UserAgent    string `json:"user_agent"`
	CreatedAt    string `json:"created_at"`
	LastActivity string `json:"last_activity"`
	ExpiresAt    string `json:"expires_at"`
}

// ToMap converts SessionData for a Redis HSET.
func (s *SessionData) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"user_id":       s.UserID,
		"email":         s.Email,
		"role":          s.Role,
		"ip_address":    s.IPAddress,
		"user_agent":    s.UserAgent,
		"created_at":    s.CreatedAt,
		"last_activity": s.LastActivity,
		"expires_at":    s.ExpiresAt,
	}
}

// SessionFromMap rebuilds SessionData from a Redis hash.
func SessionFromMap(data map[string]string) *SessionData {
	return &SessionData{
		UserID:       data["user_id"],
		Email:        data["email"],
		Role:         data["role"],
		IPAddress:    data["ip_address"],
		UserAgent:    data["user_agent"],
		CreatedAt:    data["created_at"],
		LastActivity: data["last_activity"],
		ExpiresAt:    data["expires_at"],
	}
}
