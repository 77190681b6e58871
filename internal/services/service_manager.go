package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nexus-hub/engagement-service/internal/cache"
	"github.com/nexus-hub/engagement-service/internal/config"
	"github.com/nexus-hub/engagement-service/internal/events"
	"github.com/nexus-hub/engagement-service/internal/repositories"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

// ServiceManager wires and owns all domain services.
type ServiceManager interface {
	Initialize() error
	Auth() AuthService
	User() UserService
	Course() CourseService
	Idea() IdeaService
	Achievement() AchievementService
	Chat() ChatService
	Seed() SeedService
	Shutdown(ctx context.Context) error
}

type serviceManager struct {
	repo      repositories.Repository
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher
	jwt       config.JWTConfig
	logger    *slog.Logger

	mu          sync.RWMutex
	initialized bool

	auth        AuthService
	user        UserService
	course      CourseService
	idea        IdeaService
	achievement AchievementService
	chat        ChatService
	seed        SeedService
}

// NewServiceManager creates a service manager; call Initialize before use.
func NewServiceManager(
	repo repositories.Repository,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	jwt config.JWTConfig,
	logger *slog.Logger,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		validator: v,
		cache:     cacheManager,
		publisher: publisher,
		jwt:       jwt,
		logger:    logger,
	}
}

func (m *serviceManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return fmt.Errorf("service manager already initialized")
	}

	m.auth = NewAuthService(m.repo, m.validator, m.publisher, m.jwt, m.logger)
	m.user = NewUserService(m.repo, m.validator, m.cache, m.logger)
	m.course = NewCourseService(m.repo, m.validator, m.cache, m.publisher, m.logger)
	m.idea = NewIdeaService(m.repo, m.validator, m.cache, m.publisher, m.logger)
	m.achievement = NewAchievementService(m.repo, m.logger)
	m.chat = NewChatService(m.repo, m.validator, m.logger)
	m.seed = NewSeedService(m.repo, m.cache, m.logger)

	m.initialized = true
	m.logger.Info("service manager initialized")
	return nil
}

func (m *serviceManager) Auth() AuthService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.auth
}

func (m *serviceManager) User() UserService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

func (m *serviceManager) Course() CourseService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.course
}

func (m *serviceManager) Idea() IdeaService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idea
}

func (m *serviceManager) Achievement() AchievementService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.achievement
}

func (m *serviceManager) Chat() ChatService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chat
}

func (m *serviceManager) Seed() SeedService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seed
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}
	m.initialized = false

	if err := m.publisher.Close(); err != nil {
		return fmt.Errorf("failed to close event publisher: %w", err)
	}
	m.logger.Info("service manager shut down")
	return nil
}
