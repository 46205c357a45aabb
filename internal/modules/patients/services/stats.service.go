package services

import (
	"context"
	"math"
	"time"

	"clinic-core/internal/modules/patients/dto"
	"clinic-core/internal/modules/patients/repository"
	"clinic-core/internal/shared/apperrors"

	"go.uber.org/zap"
)

type StatsService struct {
	repo *repository.PatientRepository
	log  *zap.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(repo *repository.PatientRepository, log *zap.Logger) *StatsService {
	return &StatsService{repo: repo, log: log}
}

// Overview computes the dashboard counters in two passes: one aggregation
// for the demographic breakdown, one count for recent visits.
func (s *StatsService) Overview(ctx context.Context) (*dto.StatsResponse, error) {
	result, err := s.repo.Stats(ctx)
	if err != nil {
		s.log.Error("failed to aggregate patient stats", zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch statistics")
	}

	recent, err := s.repo.CountRecentVisits(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("failed to count recent visits", zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch statistics")
	}

	response := &dto.StatsResponse{
		Total:        result.Total,
		Male:         result.Male,
		Female:       result.Female,
		Children:     result.Children,
		RecentVisits: recent,
	}

	// Patients without a birth date are excluded from the average, so a
	// collection with none of them recorded reports zero.
	if result.AverageAge != nil {
		response.AverageAge = int(math.Round(*result.AverageAge))
	}

	return response, nil
}
