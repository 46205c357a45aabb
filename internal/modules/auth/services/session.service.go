package services

import (
	"context"
	"time"

	"clinic-core/internal/app/config"
	redisInfra "clinic-core/internal/infrastructure/database/redis"
	"clinic-core/internal/modules/auth/dto"
)

// SessionService owns the Redis-backed session store. One hash per session
// token plus a per-user set of active tokens.
type SessionService struct {
	redisClient *redisInfra.Client
	ttl         time.Duration
}

// NewSessionService creates a new session service.
func NewSessionService(redisClient *redisInfra.Client, cfg *config.Config) *SessionService {
	return &SessionService{
		redisClient: redisClient,
		ttl:         cfg.Session.TTL,
	}
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// CreateSession stores a session hash and indexes the token under its user.
func (s *SessionService) CreateSession(ctx context.Context, token string, session *dto.SessionData) error {
	keys := s.redisClient.Keys()
	pipe := s.redisClient.Client().Pipeline()

	sessionKey := keys.SessionKey(token)
	pipe.HSet(ctx, sessionKey, session.ToMap())
	pipe.Expire(ctx, sessionKey, s.ttl)

	userSessionsKey := keys.UserSessionsKey(session.UserID)
	pipe.SAdd(ctx, userSessionsKey, token)
	pipe.Expire(ctx, userSessionsKey, s.ttl)

	_, err := pipe.Exec(ctx)
	return err
}

// GetSession returns the session for a token, or nil when the token is
// unknown or expired. Expiry is enforced both by the key TTL and the
// recorded expires_at, so a lookup never returns a stale session.
func (s *SessionService) GetSession(ctx context.Context, token string) (*dto.SessionData, error) {
	if token == "" {
		return nil, nil
	}

	sessionKey := s.redisClient.Keys().SessionKey(token)
	data, err := s.redisClient.HGetAll(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	session := dto.SessionFromMap(data)

	if expiresAt, err := time.Parse(time.RFC3339, session.ExpiresAt); err != nil || !expiresAt.After(time.Now()) {
		s.DeleteSession(ctx, token, session.UserID)
		return nil, nil
	}

	s.touch(ctx, sessionKey)
	return session, nil
}

// DeleteSession removes a session. Idempotent: deleting an unknown token
// succeeds so logout can never fail client-side.
func (s *SessionService) DeleteSession(ctx context.Context, token, userID string) error {
	keys := s.redisClient.Keys()
	pipe := s.redisClient.Client().Pipeline()

	pipe.Del(ctx, keys.SessionKey(token))
	if userID != "" {
		pipe.SRem(ctx, keys.UserSessionsKey(userID), token)
	}

	pipe.Exec(ctx)
	return nil
}

// ActiveUserSessions lists the tokens currently held by a user.
func (s *SessionService) ActiveUserSessions(ctx context.Context, userID string) ([]string, error) {
	userSessionsKey := s.redisClient.Keys().UserSessionsKey(userID)
	return s.redisClient.Client().SMembers(ctx, userSessionsKey).Result()
}

// touch refreshes the last-activity marker without extending the session.
func (s *SessionService) touch(ctx context.Context, sessionKey string) {
	now := time.Now().Format(time.RFC3339)
	s.redisClient.Client().HSet(ctx, sessionKey, "last_activity", now)
}
