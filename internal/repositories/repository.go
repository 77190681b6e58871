package repositories

import "context"

// Repository aggregates all domain repositories behind one handle.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Idea() IdeaRepository
	Achievement() AchievementRepository
	Chat() ChatRepository

	// WithTransaction runs fn against a repository bound to a single database
	// transaction; any error rolls back the whole sequence.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
