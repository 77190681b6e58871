package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/nexus-hub/engagement-service/internal/cache"
	"github.com/nexus-hub/engagement-service/internal/events"
	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

// CourseCompletionXP is awarded once when a user first reaches 100% progress.
const CourseCompletionXP = 150

// CourseResponse is a catalog entry annotated with the requesting user's
// enrollment state.
type CourseResponse struct {
	*models.Course
	IsEnrolled   bool `json:"isEnrolled"`
	UserProgress int  `json:"userProgress"`
}

// ProgressResponse reports the stored progress after an update.
type ProgressResponse struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// CourseService covers the catalog, enrollment and progress tracking.
type CourseService interface {
	List(ctx context.Context, userID uint, category *models.CourseCategory) ([]*CourseResponse, error)
	Get(ctx context.Context, id uint) (*models.Course, error)
	Enroll(ctx context.Context, courseID, userID uint) (*models.Course, error)
	UpdateProgress(ctx context.Context, courseID, userID uint, req *validator.UpdateProgressRequest) (*ProgressResponse, error)
}

type courseService struct {
	repo      repositories.Repository
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewCourseService creates the course service.
func NewCourseService(
	repo repositories.Repository,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	logger *slog.Logger,
) CourseService {
	return &courseService{
		repo:      repo,
		validator: v,
		cache:     cacheManager,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *courseService) List(ctx context.Context, userID uint, category *models.CourseCategory) ([]*CourseResponse, error) {
	courses, err := s.listCatalog(ctx, category)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.repo.Course().ListEnrollmentsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}

	byCourse := make(map[uint]*models.CourseEnrollment, len(enrollments))
	for _, e := range enrollments {
		byCourse[e.CourseID] = e
	}

	out := make([]*CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp := &CourseResponse{Course: course}
		if e, ok := byCourse[course.ID]; ok {
			resp.IsEnrolled = true
			resp.UserProgress = e.Progress
		}
		out = append(out, resp)
	}
	return out, nil
}

// listCatalog returns the raw catalog, cached per category filter.
func (s *courseService) listCatalog(ctx context.Context, category *models.CourseCategory) ([]*models.Course, error) {
	cacheKey := "list:all"
	if category != nil {
		cacheKey = fmt.Sprintf("list:%s", *category)
	}

	var cached []*models.Course
	if err := s.cache.Course.Get(ctx, cacheKey, &cached); err == nil {
		s.logger.Debug("course catalog served from cache", "key", cacheKey)
		return cached, nil
	}

	courses, err := s.repo.Course().List(ctx, repositories.CourseFilters{Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if err := s.cache.Course.Set(ctx, cacheKey, courses, cache.CourseCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache course catalog", "error", err)
	}
	return courses, nil
}

func (s *courseService) Get(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	return course, nil
}

func (s *courseService) Enroll(ctx context.Context, courseID, userID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	if _, err := s.repo.Course().GetEnrollment(ctx, courseID, userID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	enrollment := &models.CourseEnrollment{
		CourseID:  courseID,
		UserID:    userID,
		Progress:  0,
		StartedAt: time.Now(),
	}
	if err := s.repo.Course().CreateEnrollment(ctx, enrollment); err != nil {
		// Concurrent enrolls race on the composite unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	if err := s.cache.InvalidateUserStats(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate stats cache", "error", err, "user_id", userID)
	}

	s.logger.Info("user enrolled", "user_id", userID, "course_id", courseID)
	return course, nil
}

func (s *courseService) UpdateProgress(ctx context.Context, courseID, userID uint, req *validator.UpdateProgressRequest) (*ProgressResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}
	progress := *req.Progress

	var (
		course  *models.Course
		awarded bool
	)

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		course, err = tx.Course().GetByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load course: %w", err)
		}

		enrollment, err := tx.Course().GetEnrollment(ctx, courseID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotEnrolled
			}
			return fmt.Errorf("failed to load enrollment: %w", err)
		}

		enrollment.Progress = progress

		// The completion award fires exactly once per enrollment; CompletedAt
		// is the guard and never resets, even if progress is lowered later.
		if progress == 100 && enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
			awarded = true

			if err := tx.User().AddXP(ctx, userID, CourseCompletionXP); err != nil {
				return fmt.Errorf("failed to award xp: %w", err)
			}

			achievement := &models.Achievement{
				UserID:      userID,
				Name:        "Course Completed",
				Description: fmt.Sprintf("Completed %s", course.Title),
				Icon:        "graduation-cap",
				Color:       "blue",
				EarnedAt:    now,
			}
			if err := tx.Achievement().Create(ctx, achievement); err != nil {
				return fmt.Errorf("failed to create achievement: %w", err)
			}
		}

		if err := tx.Course().UpdateEnrollment(ctx, enrollment); err != nil {
			return fmt.Errorf("failed to update enrollment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Events only after the transaction commits.
	if awarded {
		if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeCourseCompleted, events.CourseCompletedEvent{
			UserID:      userID,
			CourseID:    courseID,
			CourseTitle: course.Title,
			XPAwarded:   CourseCompletionXP,
		})); err != nil {
			s.logger.Error("failed to publish course.completed event", "error", err, "course_id", courseID)
		}
		if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeAchievementEarned, events.AchievementEarnedEvent{
			UserID:          userID,
			AchievementName: "Course Completed",
			Description:     fmt.Sprintf("Completed %s", course.Title),
		})); err != nil {
			s.logger.Error("failed to publish achievement.earned event", "error", err, "user_id", userID)
		}
		s.logger.Info("course completed", "user_id", userID, "course_id", courseID, "xp_awarded", CourseCompletionXP)
	}

	if err := s.cache.InvalidateUserStats(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate stats cache", "error", err, "user_id", userID)
	}

	return &ProgressResponse{Progress: progress, Completed: awarded}, nil
}
