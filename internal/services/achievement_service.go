package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
)

// AchievementService lists the badges a user has earned.
type AchievementService interface {
	ListByUser(ctx context.Context, userID uint) ([]*models.Achievement, error)
}

type achievementService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewAchievementService creates the achievement service.
func NewAchievementService(repo repositories.Repository, logger *slog.Logger) AchievementService {
	return &achievementService{repo: repo, logger: logger}
}

func (s *achievementService) ListByUser(ctx context.Context, userID uint) ([]*models.Achievement, error) {
	achievements, err := s.repo.Achievement().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	if achievements == nil {
		achievements = []*models.Achievement{}
	}
	return achievements, nil
}
