package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
)

// BootstrapSystem runs the startup phases in order: indexes first, then
// data seeding.
type BootstrapSystem struct {
	indexManager   *IndexManager
	seedingManager *SeedingManager
	timeout        time.Duration
}

// PhaseResult records the outcome of one bootstrap phase.
type PhaseResult struct {
	Phase    string        `json:"phase"`
	Success  bool          `json:"success"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// NewBootstrapSystem creates a new bootstrap system.
func NewBootstrapSystem(indexManager *IndexManager, seedingManager *SeedingManager) *BootstrapSystem {
	return &BootstrapSystem{
		indexManager:   indexManager,
		seedingManager: seedingManager,
		timeout:        2 * time.Minute,
	}
}

// Execute runs every bootstrap phase and stops at the first failure.
func (bs *BootstrapSystem) Execute(ctx context.Context) ([]PhaseResult, error) {
	ctx, cancel := context.WithTimeout(ctx, bs.timeout)
	defer cancel()

	fmt.Printf("[BOOTSTRAP] Starting bootstrap (timeout: %v)\n", bs.timeout)

	phases := []struct {
		name  string
		run   func(context.Context) error
		fatal bool
	}{
		// A missed index degrades search until the next restart; a missed
		// admin seed locks the operator out entirely.
		{"indexes", bs.indexManager.EnsureIndexes, false},
		{"seeding", bs.seedingManager.SeedAdminUser, true},
	}

	results := make([]PhaseResult, 0, len(phases))
	for _, phase := range phases {
		start := time.Now()
		err := phase.run(ctx)
		result := PhaseResult{
			Phase:    phase.name,
			Success:  err == nil,
			Duration: time.Since(start),
		}
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			fmt.Printf("[BOOTSTRAP] Phase %s failed after %v: %v\n", phase.name, result.Duration, err)
			if phase.fatal {
				return results, fmt.Errorf("bootstrap phase %s: %w", phase.name, err)
			}
			continue
		}
		results = append(results, result)
		fmt.Printf("[BOOTSTRAP] Phase %s completed in %v\n", phase.name, result.Duration)
	}

	fmt.Printf("[BOOTSTRAP] Bootstrap completed\n")
	return results, nil
}

// RegisterBootstrapLifecycle runs the bootstrap on application start,
// before the HTTP server begins accepting requests.
func RegisterBootstrapLifecycle(lc fx.Lifecycle, bs *BootstrapSystem) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := bs.Execute(ctx)
			return err
		},
	})
}
