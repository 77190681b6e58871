package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

func newTestChatService(repo *mockRepository) ChatService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewChatService(repo, validator.New(), logger)
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (ChatService, *mockRepository) {
		repo := newMockRepository()
		for _, c := range []*models.Course{
			{Title: "Intro to Git", Category: models.CategoryTechnical, Duration: "1h", Rating: 4.2},
			{Title: "AI Tools for Modern Developers", Category: models.CategoryTechnical, Duration: "2h 30m", Rating: 4.8},
			{Title: "Managing Remote Teams", Category: models.CategoryLeadership, Duration: "1h 15m", Rating: 4.9},
		} {
			if err := repo.courses.Create(ctx, c); err != nil {
				t.Fatalf("Failed to create course: %v", err)
			}
		}
		return newTestChatService(repo), repo
	}

	t.Run("training intent names the top technical course", func(t *testing.T) {
		service, _ := setup(t)
		resp, err := service.SendMessage(ctx, 1, &validator.ChatRequest{Message: "Any COURSE recommendations?"})
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if resp.Intent != models.IntentTraining {
			t.Errorf("Expected training intent, got %s", resp.Intent)
		}
		// The Leadership course has a higher rating but must not be picked.
		if !strings.Contains(resp.Response, "AI Tools for Modern Developers") {
			t.Errorf("Expected top technical course in response, got %q", resp.Response)
		}
	})

	t.Run("intent priority and canned responses", func(t *testing.T) {
		service, _ := setup(t)

		tests := []struct {
			message string
			intent  models.ChatIntent
			want    string
		}{
			{"I have a suggestion", models.IntentIdea, "Innovation drives us forward"},
			{"what is the remote policy", models.IntentPolicy, "Remote Work Policy (Section 4.2)"},
			{"found a bug in the portal", models.IntentSupport, "logged ticket"},
			{"hello there", models.IntentGeneral, "HR policies, technical documentation"},
		}
		for _, tt := range tests {
			resp, err := service.SendMessage(ctx, 1, &validator.ChatRequest{Message: tt.message})
			if err != nil {
				t.Fatalf("SendMessage(%q) failed: %v", tt.message, err)
			}
			if resp.Intent != tt.intent {
				t.Errorf("Message %q: expected intent %s, got %s", tt.message, tt.intent, resp.Intent)
			}
			if !strings.Contains(resp.Response, tt.want) {
				t.Errorf("Message %q: expected response containing %q, got %q", tt.message, tt.want, resp.Response)
			}
		}
	})

	t.Run("training keyword outranks support keyword", func(t *testing.T) {
		service, _ := setup(t)
		resp, err := service.SendMessage(ctx, 1, &validator.ChatRequest{Message: "help me find a course"})
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if resp.Intent != models.IntentTraining {
			t.Errorf("Expected training intent to win, got %s", resp.Intent)
		}
	})

	t.Run("support response carries a ticket id", func(t *testing.T) {
		service, _ := setup(t)
		resp, err := service.SendMessage(ctx, 1, &validator.ChatRequest{Message: "I have an issue"})
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if !strings.Contains(resp.Response, "#IT-") {
			t.Errorf("Expected a ticket reference, got %q", resp.Response)
		}
	})

	t.Run("exchange is persisted", func(t *testing.T) {
		service, repo := setup(t)
		if _, err := service.SendMessage(ctx, 7, &validator.ChatRequest{Message: "hello"}); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}

		history, err := repo.chat.ListRecentByUser(ctx, 7, chatHistoryLimit)
		if err != nil {
			t.Fatalf("History read failed: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("Expected 1 stored exchange, got %d", len(history))
		}
		if history[0].Message != "hello" || history[0].Intent != models.IntentGeneral {
			t.Errorf("Unexpected stored exchange: %+v", history[0])
		}
	})

	t.Run("training works with an empty catalog", func(t *testing.T) {
		repo := newMockRepository()
		service := newTestChatService(repo)
		resp, err := service.SendMessage(ctx, 1, &validator.ChatRequest{Message: "any course?"})
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if resp.Intent != models.IntentTraining || resp.Response == "" {
			t.Errorf("Expected training fallback response, got %+v", resp)
		}
	})
}

func TestChatService_GetHistory(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := newTestChatService(repo)

	for i := 0; i < chatHistoryLimit+5; i++ {
		if _, err := service.SendMessage(ctx, 1, &validator.ChatRequest{Message: fmt.Sprintf("message %d", i)}); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}

	history, err := service.GetHistory(ctx, 1)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != chatHistoryLimit {
		t.Errorf("Expected history capped at %d, got %d", chatHistoryLimit, len(history))
	}
	if history[0].Message != fmt.Sprintf("message %d", chatHistoryLimit+4) {
		t.Errorf("Expected newest first, got %q", history[0].Message)
	}

	// A user with no exchanges gets an empty slice, not nil.
	empty, err := service.GetHistory(ctx, 99)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty history, got %v", empty)
	}
}
