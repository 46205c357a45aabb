package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"clinic-core/internal/app/config"
	redisInfra "clinic-core/internal/infrastructure/database/redis"
	"clinic-core/internal/modules/auth/dto"
	"clinic-core/internal/modules/auth/repository"
	"clinic-core/internal/shared/apperrors"
	"clinic-core/internal/shared/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidRoles is the closed set of roles a user can hold.
var ValidRoles = []string{"admin", "doctor", "nurse", "assistant"}

const defaultRole = "assistant"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	users          *repository.UserRepository
	redisClient    *redisInfra.Client
	sessionService *SessionService
	cfg            *config.Config
	log            *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users *repository.UserRepository,
	redisClient *redisInfra.Client,
	sessionService *SessionService,
	cfg *config.Config,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:          users,
		redisClient:    redisClient,
		sessionService: sessionService,
		cfg:            cfg,
		log:            log,
	}
}

// Signup registers a new user and returns its public fields.
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserData, error) {
	// 1. Normalize and validate the input
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = defaultRole
	}

	var details []apperrors.FieldError
	if !emailRegex.MatchString(email) {
		details = append(details, apperrors.FieldError{Field: "email", Message: "Invalid email format"})
	}
	if len(req.Password) < 6 {
		details = append(details, apperrors.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if !isValidRole(role) {
		details = append(details, apperrors.FieldError{Field: "role", Message: "Role must be one of: admin, doctor, nurse, assistant"})
	}
	if len(details) > 0 {
		return nil, apperrors.Validation(details)
	}

	// 2. Hash the password before anything is persisted
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.Internal("Failed to create user")
	}

	user := &repository.User{
		ID:             uuid.New().String(),
		Email:          email,
		HashedPassword: hashed,
		Role:           role,
		CreatedAt:      time.Now().UTC(),
	}

	// 3. Persist; the unique index on email is the source of truth for
	// duplicate detection
	if err := s.users.Insert(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperrors.DuplicateEmail()
		}
		s.log.Error("failed to insert user", zap.Error(err))
		return nil, apperrors.Internal("Failed to create user")
	}

	return publicUser(user), nil
}

// Login authenticates credentials and issues a new session token. The
// failure message is identical for unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, ip, userAgent string) (string, *dto.UserData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 1. Rate limiting per email+IP
	if s.isRateLimited(ctx, email, ip) {
		return "", nil, apperrors.RateLimited()
	}

	// 2. Look up the user
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("failed to load user during login", zap.Error(err))
		return "", nil, apperrors.Internal("Login failed")
	}
	if user == nil {
		s.recordFailure(ctx, email, ip)
		return "", nil, apperrors.InvalidCredentials()
	}

	// 3. Verify the password
	if !utils.VerifyPassword(req.Password, user.HashedPassword) {
		s.recordFailure(ctx, email, ip)
		return "", nil, apperrors.InvalidCredentials()
	}

	// 4. Issue the session
	token := uuid.New().String()
	now := time.Now()
	session := &dto.SessionData{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		IPAddress:    ip,
		UserAgent:    userAgent,
		CreatedAt:    now.Format(time.RFC3339),
		LastActivity: now.Format(time.RFC3339),
		ExpiresAt:    now.Add(s.sessionService.TTL()).Format(time.RFC3339),
	}

	if err := s.sessionService.CreateSession(ctx, token, session); err != nil {
		s.log.Error("failed to create session", zap.Error(err))
		return "", nil, apperrors.Internal("Login failed")
	}

	// 5. Clear the failure counter on success
	s.clearFailures(ctx, email, ip)

	s.log.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return token, publicUser(user), nil
}

// ValidateSession resolves a token to its user and session. An unknown,
// expired, or orphaned token yields (nil, nil, nil): anonymous is a normal
// outcome, not a failure.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*dto.UserData, *dto.SessionData, error) {
	session, err := s.sessionService.GetSession(ctx, token)
	if err != nil {
		s.log.Warn("session lookup failed", zap.Error(err))
		return nil, nil, nil
	}
	if session == nil {
		return nil, nil, nil
	}

	// The owning user must still exist
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		s.log.Warn("session owner lookup failed", zap.Error(err))
		return nil, nil, nil
	}
	if user == nil {
		s.sessionService.DeleteSession(ctx, token, session.UserID)
		return nil, nil, nil
	}

	return publicUser(user), session, nil
}

// Logout invalidates a session. Idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.sessionService.GetSession(ctx, token)

	userID := ""
	if err == nil && session != nil {
		userID = session.UserID
	}

	return s.sessionService.DeleteSession(ctx, token, userID)
}

func (s *AuthService) isRateLimited(ctx context.Context, email, ip string) bool {
	key := s.redisClient.Keys().LoginFailuresKey(email, ip)

	val, err := s.redisClient.Get(ctx, key)
	if err != nil {
		return false
	}

	failures, err := strconv.Atoi(val)
	if err != nil {
		return false
	}
	return failures >= s.cfg.Auth.MaxLoginFailures
}

func (s *AuthService) recordFailure(ctx context.Context, email, ip string) {
	key := s.redisClient.Keys().LoginFailuresKey(email, ip)

	count, err := s.redisClient.Incr(ctx, key)
	if err != nil {
		return
	}
	if count == 1 {
		s.redisClient.Expire(ctx, key, s.cfg.Auth.LoginFailureTTL)
	}
}

func (s *AuthService) clearFailures(ctx context.Context, email, ip string) {
	key := s.redisClient.Keys().LoginFailuresKey(email, ip)
	s.redisClient.Del(ctx, key)
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func publicUser(user *repository.User) *dto.UserData {
	return &dto.UserData{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
