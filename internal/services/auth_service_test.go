package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/nexus-hub/engagement-service/internal/config"
	"github.com/nexus-hub/engagement-service/internal/events"
	"github.com/nexus-hub/engagement-service/internal/utils"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

var testJWT = config.JWTConfig{Secret: "test-secret", TTL: time.Hour}

func newTestAuthService(repo *mockRepository, publisher events.EventPublisher) AuthService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAuthService(repo, validator.New(), publisher, testJWT, logger)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("creates user with defaults and valid token", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestAuthService(repo, publisher)

		resp, err := service.Register(ctx, &validator.RegisterRequest{
			Name:     "Alex Morgan",
			Email:    "alex@nexus.com",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		if resp.User.Level != 5 || resp.User.XP != 1250 {
			t.Errorf("Expected default level 5 / xp 1250, got %d / %d", resp.User.Level, resp.User.XP)
		}
		if resp.User.Role != "Senior Developer" {
			t.Errorf("Expected default role, got %q", resp.User.Role)
		}
		if resp.User.Skills.Technical != 85 {
			t.Errorf("Expected default technical skill 85, got %d", resp.User.Skills.Technical)
		}

		claims, err := utils.ParseToken(resp.Token, testJWT.Secret)
		if err != nil {
			t.Fatalf("Token did not parse: %v", err)
		}
		if claims.UserID != resp.User.ID {
			t.Errorf("Token carries user %d, expected %d", claims.UserID, resp.User.ID)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeUserRegistered {
			t.Fatalf("Expected one user.registered event, got %+v", published)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newMockRepository()
		service := newTestAuthService(repo, events.NewNoopEventPublisher())

		req := &validator.RegisterRequest{Name: "Alex", Email: "alex@nexus.com", Password: "password123"}
		if _, err := service.Register(ctx, req); err != nil {
			t.Fatalf("First register failed: %v", err)
		}
		if _, err := service.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("Expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("rejects invalid payload", func(t *testing.T) {
		repo := newMockRepository()
		service := newTestAuthService(repo, events.NewNoopEventPublisher())

		_, err := service.Register(ctx, &validator.RegisterRequest{Name: "A", Email: "bad", Password: "x"})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Expected ErrValidationFailed, got %v", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (AuthService, *mockRepository) {
		repo := newMockRepository()
		service := newTestAuthService(repo, events.NewNoopEventPublisher())
		_, err := service.Register(ctx, &validator.RegisterRequest{
			Name:     "Alex Morgan",
			Email:    "alex@nexus.com",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("Setup register failed: %v", err)
		}
		return service, repo
	}

	t.Run("accepts valid credentials", func(t *testing.T) {
		service, _ := setup(t)
		resp, err := service.Login(ctx, &validator.LoginRequest{Email: "alex@nexus.com", Password: "password123"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Token == "" {
			t.Error("Expected a token")
		}
	})

	t.Run("wrong password and unknown email yield the same error", func(t *testing.T) {
		service, _ := setup(t)

		_, errWrongPassword := service.Login(ctx, &validator.LoginRequest{Email: "alex@nexus.com", Password: "nope123"})
		if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", errWrongPassword)
		}

		_, errUnknown := service.Login(ctx, &validator.LoginRequest{Email: "ghost@nexus.com", Password: "password123"})
		if !errors.Is(errUnknown, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", errUnknown)
		}
	})

	t.Run("updates last login", func(t *testing.T) {
		service, repo := setup(t)
		user, _ := repo.users.GetByEmail(ctx, "alex@nexus.com")
		user.LastLogin = time.Now().Add(-24 * time.Hour)

		if _, err := service.Login(ctx, &validator.LoginRequest{Email: "alex@nexus.com", Password: "password123"}); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if time.Since(user.LastLogin) > time.Minute {
			t.Error("Expected last login to be refreshed")
		}
	})
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastLogin time.Time
		current   int
		want      int
	}{
		{"same day keeps streak", now.Add(-2 * time.Hour), 12, 12},
		{"previous day within 48h extends", now.Add(-20 * time.Hour), 12, 13},
		{"gap over 48h resets", now.Add(-72 * time.Hour), 12, 1},
		{"zero last login keeps streak", time.Time{}, 12, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextStreak(tt.current, tt.lastLogin, now); got != tt.want {
				t.Errorf("nextStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}
