package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nexus-hub/engagement-service/internal/cache"
	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
)

// SeedService resets the database to a known demo fixture. Registered only
// outside production.
type SeedService interface {
	Reset(ctx context.Context) error
}

type seedService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

// NewSeedService creates the seed service.
func NewSeedService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger) SeedService {
	return &seedService{repo: repo, cache: cacheManager, logger: logger}
}

// Reset wipes users, courses, ideas and achievements and recreates the demo
// fixture. Chat history is deliberately left in place.
func (s *seedService) Reset(ctx context.Context) error {
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Achievement().DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear achievements: %w", err)
		}
		if err := tx.Idea().DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear ideas: %w", err)
		}
		if err := tx.Course().DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear courses: %w", err)
		}
		if err := tx.User().DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear users: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash fixture password: %w", err)
		}
		user := &models.User{
			Name:         "Alex Morgan",
			Email:        "alex@nexus.com",
			PasswordHash: string(hash),
			Role:         "Senior Developer",
			LastLogin:    time.Now(),
		}
		if err := tx.User().Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create fixture user: %w", err)
		}

		courses := []*models.Course{
			{
				Title:       "AI Tools for Modern Developers",
				Description: "Master the integration of LLMs into your daily coding workflow.",
				Category:    models.CategoryTechnical,
				Duration:    "2h 30m",
				Rating:      4.8,
				Gradient:    "from-indigo-500 to-blue-600",
				Icon:        "brain-circuit",
			},
			{
				Title:       "Collaborative Problem Solving",
				Description: "Strategies for overcoming resistance to change in large teams.",
				Category:    models.CategorySoftSkills,
				Duration:    "45m",
				Rating:      4.5,
				Gradient:    "from-orange-400 to-pink-500",
				Icon:        "users",
			},
			{
				Title:       "Managing Remote Teams",
				Description: "Best practices for leading distributed teams effectively.",
				Category:    models.CategoryLeadership,
				Duration:    "1h 15m",
				Rating:      4.7,
				IsLocked:    true,
				Gradient:    "from-green-400 to-teal-500",
				Icon:        "users-2",
			},
		}
		for _, course := range courses {
			if err := tx.Course().Create(ctx, course); err != nil {
				return fmt.Errorf("failed to create fixture course: %w", err)
			}
		}

		ideas := []*models.Idea{
			{
				Title:       `Proposal: "Fail Fast" Fridays`,
				Description: "Host a weekly 30-minute session where we share what didn't work with the new AI system.",
				Category:    models.IdeaProcessImprovement,
				Status:      models.IdeaPending,
				AuthorID:    user.ID,
			},
			{
				Title:       "Legacy System Bridge",
				Description: "API wrapper that allows the new AI bot to query the old SQL database.",
				Category:    models.IdeaTechnicalSolution,
				Status:      models.IdeaPending,
				AuthorID:    user.ID,
			},
		}
		for _, idea := range ideas {
			if err := tx.Idea().Create(ctx, idea); err != nil {
				return fmt.Errorf("failed to create fixture idea: %w", err)
			}
		}

		achievements := []*models.Achievement{
			{
				UserID:      user.ID,
				Name:        "Early Bird",
				Description: "Logged in before 9 AM for 5 days",
				Icon:        "award",
				Color:       "yellow",
				EarnedAt:    time.Now(),
			},
			{
				UserID:      user.ID,
				Name:        "Code Master",
				Description: "Completed React Basics",
				Icon:        "code-2",
				Color:       "blue",
				EarnedAt:    time.Now(),
			},
		}
		for _, achievement := range achievements {
			if err := tx.Achievement().Create(ctx, achievement); err != nil {
				return fmt.Errorf("failed to create fixture achievement: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.cache.InvalidateCourses(ctx); err != nil {
		s.logger.Warn("failed to invalidate course cache after seed", "error", err)
	}
	if err := s.cache.Stats.InvalidatePattern(ctx, "*"); err != nil {
		s.logger.Warn("failed to invalidate stats cache after seed", "error", err)
	}

	s.logger.Info("database seeded")
	return nil
}
