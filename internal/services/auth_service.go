package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nexus-hub/engagement-service/internal/config"
	"github.com/nexus-hub/engagement-service/internal/events"
	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
	"github.com/nexus-hub/engagement-service/internal/utils"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

// AuthResponse carries a signed token plus the authenticated user's profile.
type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// AuthService handles registration and credential login.
type AuthService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error)
}

type authService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	jwt       config.JWTConfig
	logger    *slog.Logger
}

// NewAuthService creates the authentication service.
func NewAuthService(
	repo repositories.Repository,
	v *validator.Validator,
	publisher events.EventPublisher,
	jwt config.JWTConfig,
	logger *slog.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		jwt:       jwt,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, req *validator.RegisterRequest) (*AuthResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	skills, err := json.Marshal(models.DefaultSkillSet())
	if err != nil {
		return nil, fmt.Errorf("failed to encode default skills: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "Senior Developer",
		Avatar:       fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", req.Name),
		Level:        5,
		XP:           1250,

		ProductivityScore:    94,
		LearningPathProgress: 82,
		Skills:               skills,
		Streak:               12,
		LastLogin:            time.Now(),
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		// Concurrent register with the same email loses on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwt.Secret, s.jwt.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeUserRegistered, events.UserRegisteredEvent{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})); err != nil {
		s.logger.Error("failed to publish user.registered event", "error", err, "user_id", user.ID)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)

	return &AuthResponse{Token: token, User: user.Public()}, nil
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error for unknown email and wrong password.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.Streak = nextStreak(user.Streak, user.LastLogin, now)
	user.LastLogin = now
	if err := s.repo.User().Update(ctx, user); err != nil {
		s.logger.Error("failed to update login streak", "error", err, "user_id", user.ID)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwt.Secret, s.jwt.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &AuthResponse{Token: token, User: user.Public()}, nil
}

// nextStreak extends the daily streak when the previous login was on an
// earlier day but less than 48 hours ago; a longer gap resets it.
func nextStreak(current int, lastLogin, now time.Time) int {
	if lastLogin.IsZero() {
		return current
	}
	if sameDay(lastLogin, now) {
		return current
	}
	if now.Sub(lastLogin) < 48*time.Hour {
		return current + 1
	}
	return 1
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
