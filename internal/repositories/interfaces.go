package repositories

import (
	"context"

	"github.com/nexus-hub/engagement-service/internal/models"
)

// ===== FILTERS =====

// CourseFilters narrows catalog queries.
type CourseFilters struct {
	Category *models.CourseCategory
}

// IdeaFilters narrows idea-board queries.
type IdeaFilters struct {
	Category *models.IdeaCategory
	AuthorID *uint
}

// ===== USER DOMAIN =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error

	// AddXP atomically increments the user's experience points.
	AddXP(ctx context.Context, id uint, amount int) error

	// DeleteAll removes every user. Seed/reset only.
	DeleteAll(ctx context.Context) error
}

// ===== COURSE DOMAIN =====

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, error)

	// TopRatedByCategory returns the highest-rated course in a category, or
	// ErrRecordNotFound when the category is empty.
	TopRatedByCategory(ctx context.Context, category models.CourseCategory) (*models.Course, error)

	// Enrollment records; uniqueness per (course, user) is enforced here.
	GetEnrollment(ctx context.Context, courseID, userID uint) (*models.CourseEnrollment, error)
	CreateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error
	UpdateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error
	ListEnrollmentsByUser(ctx context.Context, userID uint) ([]*models.CourseEnrollment, error)
	CountEnrollmentsByUser(ctx context.Context, userID uint) (int64, error)

	DeleteAll(ctx context.Context) error
}

// ===== IDEA DOMAIN =====

type IdeaRepository interface {
	Create(ctx context.Context, idea *models.Idea) error
	GetByID(ctx context.Context, id uint) (*models.Idea, error)

	// List returns ideas with author, votes and comments preloaded, newest
	// first; ranking beyond that is the service's concern.
	List(ctx context.Context, filters IdeaFilters) ([]*models.Idea, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)

	// Vote set operations: insert-if-absent / remove-if-present.
	AddVote(ctx context.Context, ideaID, userID uint) error
	RemoveVote(ctx context.Context, ideaID, userID uint) error
	HasVoted(ctx context.Context, ideaID, userID uint) (bool, error)
	CountVotes(ctx context.Context, ideaID uint) (int64, error)

	AddComment(ctx context.Context, comment *models.IdeaComment) error
	GetComments(ctx context.Context, ideaID uint) ([]*models.IdeaComment, error)

	DeleteAll(ctx context.Context) error
}

// ===== ACHIEVEMENT DOMAIN =====

type AchievementRepository interface {
	Create(ctx context.Context, achievement *models.Achievement) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Achievement, error)
	ListRecentByUser(ctx context.Context, userID uint, limit int) ([]*models.Achievement, error)
	DeleteAll(ctx context.Context) error
}

// ===== CHAT DOMAIN =====

type ChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error

	// ListRecentByUser returns the user's most recent exchanges, newest first.
	ListRecentByUser(ctx context.Context, userID uint, limit int) ([]*models.ChatMessage, error)
}

