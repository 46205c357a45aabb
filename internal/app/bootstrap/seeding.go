package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinic-core/internal/app/config"
	"clinic-core/internal/modules/auth/repository"
	"clinic-core/internal/shared/utils"

	"github.com/google/uuid"
)

// SeedingManager creates the initial admin account on an empty users
// collection so the first operator can log in.
type SeedingManager struct {
	users  *repository.UserRepository
	config *config.Config
}

// NewSeedingManager creates a new seeding manager.
func NewSeedingManager(users *repository.UserRepository, cfg *config.Config) *SeedingManager {
	return &SeedingManager{users: users, config: cfg}
}

// SeedAdminUser inserts the bootstrap admin when no user exists yet.
// Without ADMIN_PASSWORD set, seeding is skipped and signup stays the only
// way in.
func (sm *SeedingManager) SeedAdminUser(ctx context.Context) error {
	count, err := sm.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		fmt.Printf("[SEEDING] Users already present, skipping admin seed\n")
		return nil
	}

	if sm.config.Auth.AdminPassword == "" {
		fmt.Printf("[SEEDING] ADMIN_PASSWORD not set, skipping admin seed\n")
		return nil
	}

	hashed, err := utils.HashPassword(sm.config.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &repository.User{
		ID:             uuid.New().String(),
		Email:          strings.ToLower(strings.TrimSpace(sm.config.Auth.AdminEmail)),
		HashedPassword: hashed,
		Role:           "admin",
		CreatedAt:      time.Now().UTC(),
	}

	if err := sm.users.Insert(ctx, admin); err != nil {
		if repository.IsDuplicateKey(err) {
			// Another instance seeded concurrently
			return nil
		}
		return fmt.Errorf("insert admin user: %w", err)
	}

	fmt.Printf("[SEEDING] Admin user created (%s)\n", admin.Email)
	return nil
}
