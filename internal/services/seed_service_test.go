package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/nexus-hub/engagement-service/internal/cache"
	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
)

func TestSeedService_Reset(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	repo := newMockRepository()
	service := NewSeedService(repo, cache.NewCacheManager(nil), logger)

	// Pre-existing data that the reset must replace, plus chat history that
	// must survive it.
	stale := &models.User{Name: "Old", Email: "old@nexus.com", PasswordHash: "x"}
	if err := repo.users.Create(ctx, stale); err != nil {
		t.Fatalf("Failed to create stale user: %v", err)
	}
	if err := repo.chat.Create(ctx, &models.ChatMessage{UserID: stale.ID, Message: "hi", Response: "hello", Intent: models.IntentGeneral}); err != nil {
		t.Fatalf("Failed to create chat message: %v", err)
	}

	if err := service.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if _, err := repo.users.GetByEmail(ctx, "old@nexus.com"); err == nil {
		t.Error("Expected stale user to be removed")
	}

	user, err := repo.users.GetByEmail(ctx, "alex@nexus.com")
	if err != nil {
		t.Fatalf("Fixture user missing: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Error("Fixture password does not verify")
	}

	courses, err := repo.courses.List(ctx, repositories.CourseFilters{})
	if err != nil {
		t.Fatalf("Course list failed: %v", err)
	}
	if len(courses) != 3 {
		t.Errorf("Expected 3 fixture courses, got %d", len(courses))
	}

	ideas, err := repo.ideas.List(ctx, repositories.IdeaFilters{})
	if err != nil {
		t.Fatalf("Idea list failed: %v", err)
	}
	if len(ideas) != 2 {
		t.Errorf("Expected 2 fixture ideas, got %d", len(ideas))
	}

	achievements, err := repo.achievements.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("Achievement list failed: %v", err)
	}
	if len(achievements) != 2 {
		t.Errorf("Expected 2 fixture achievements, got %d", len(achievements))
	}

	history, err := repo.chat.ListRecentByUser(ctx, stale.ID, chatHistoryLimit)
	if err != nil {
		t.Fatalf("Chat history failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Expected chat history to survive a reset, got %d messages", len(history))
	}

	// Reset is repeatable.
	if err := service.Reset(ctx); err != nil {
		t.Fatalf("Second reset failed: %v", err)
	}
}
