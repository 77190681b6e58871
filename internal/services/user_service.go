package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/nexus-hub/engagement-service/internal/cache"
	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

// DashboardResponse aggregates the signed-in user's engagement stats.
type DashboardResponse struct {
	ProductivityScore    int                   `json:"productivityScore"`
	LearningPathProgress int                   `json:"learningPathProgress"`
	EnrolledCourses      int64                 `json:"enrolledCourses"`
	TotalIdeas           int64                 `json:"totalIdeas"`
	Streak               int                   `json:"streak"`
	Achievements         []*models.Achievement `json:"achievements"`
}

// UserService covers profile reads, partial profile updates and the dashboard
// aggregate.
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.PublicUser, error)
	UpdateProfile(ctx context.Context, userID uint, req *validator.UpdateProfileRequest) (*models.PublicUser, error)
	GetDashboard(ctx context.Context, userID uint) (*DashboardResponse, error)
}

type userService struct {
	repo      repositories.Repository
	validator *validator.Validator
	cache     *cache.CacheManager
	logger    *slog.Logger
}

// NewUserService creates the user service.
func NewUserService(
	repo repositories.Repository,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	logger *slog.Logger,
) UserService {
	return &userService{
		repo:      repo,
		validator: v,
		cache:     cacheManager,
		logger:    logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.PublicUser, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	public := user.Public()
	return &public, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req *validator.UpdateProfileRequest) (*models.PublicUser, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// Absent fields are left unchanged.
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Skills != nil {
		skills, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, fmt.Errorf("failed to encode skills: %w", err)
		}
		user.Skills = skills
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.cache.InvalidateUserStats(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate stats cache", "error", err, "user_id", userID)
	}

	s.logger.Info("profile updated", "user_id", userID)

	public := user.Public()
	return &public, nil
}

func (s *userService) GetDashboard(ctx context.Context, userID uint) (*DashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:%d", userID)

	var cached DashboardResponse
	if err := s.cache.Stats.Get(ctx, cacheKey, &cached); err == nil {
		s.logger.Debug("dashboard served from cache", "user_id", userID)
		return &cached, nil
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	enrolled, err := s.repo.Course().CountEnrollmentsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}

	ideas, err := s.repo.Idea().CountByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count ideas: %w", err)
	}

	achievements, err := s.repo.Achievement().ListRecentByUser(ctx, userID, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	if achievements == nil {
		achievements = []*models.Achievement{}
	}

	dashboard := &DashboardResponse{
		ProductivityScore:    user.ProductivityScore,
		LearningPathProgress: user.LearningPathProgress,
		EnrolledCourses:      enrolled,
		TotalIdeas:           ideas,
		Streak:               user.Streak,
		Achievements:         achievements,
	}

	if err := s.cache.Stats.Set(ctx, cacheKey, dashboard, cache.StatsCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache dashboard", "error", err, "user_id", userID)
	}

	return dashboard, nil
}
