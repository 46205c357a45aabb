package redis

import (
	"fmt"
	"strings"
)

// RedisKeyGenerator builds Redis keys following the project convention:
// clinic_{environment}_{domain}_{context}:{identifier}
type RedisKeyGenerator struct {
	environment string
}

// NewRedisKeyGenerator creates a key generator bound to the runtime environment.
func NewRedisKeyGenerator(environment string) *RedisKeyGenerator {
	if environment == "" {
		environment = "development"
	}
	return &RedisKeyGenerator{environment: environment}
}

// RedisKeyPattern describes a standard key family and its TTL.
type RedisKeyPattern struct {
	Domain  string // auth, cache, ...
	Context string // session, user_sessions, login_failures, ...
	TTL     int    // TTL in seconds, 0 = no expiration
}

// Only patterns actually used by the application are listed here.
var RedisKeyPatterns = map[string]RedisKeyPattern{
	"auth_session":        {Domain: "auth", Context: "session", TTL: 86400},
	"auth_user_sessions":  {Domain: "auth", Context: "user_sessions", TTL: 86400},
	"auth_login_failures": {Domain: "auth", Context: "login_failures", TTL: 900},
}

// GenerateKey builds a key for the named pattern and identifier parts.
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("unknown Redis key pattern: %s", patternName)
	}

	prefix := fmt.Sprintf("clinic_%s_%s_%s", rkg.environment, pattern.Domain, pattern.Context)

	if len(identifier) > 0 {
		return fmt.Sprintf("%s:%s", prefix, strings.Join(identifier, "_")), nil
	}

	return prefix, nil
}

// GetTTL returns the TTL in seconds configured for a pattern.
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (int, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return 0, fmt.Errorf("unknown Redis key pattern: %s", patternName)
	}
	return pattern.TTL, nil
}

// SessionKey is a helper for the most frequent lookup.
func (rkg *RedisKeyGenerator) SessionKey(token string) string {
	key, _ := rkg.GenerateKey("auth_session", token)
	return key
}

// UserSessionsKey returns the key of the per-user token set.
func (rkg *RedisKeyGenerator) UserSessionsKey(userID string) string {
	key, _ := rkg.GenerateKey("auth_user_sessions", userID)
	return key
}

// LoginFailuresKey returns the rate-limiting counter key for an email+IP pair.
func (rkg *RedisKeyGenerator) LoginFailuresKey(email, ip string) string {
	key, _ := rkg.GenerateKey("auth_login_failures", email, ip)
	return key
}
