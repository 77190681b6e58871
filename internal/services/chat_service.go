package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"gorm.io/gorm"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

// chatHistoryLimit caps how many exchanges the history endpoint returns.
const chatHistoryLimit = 50

// ChatResponse is the assistant's reply to one message.
type ChatResponse struct {
	Response string            `json:"response"`
	Intent   models.ChatIntent `json:"intent"`
}

// ChatService implements the keyword-matching assistant and its history.
type ChatService interface {
	SendMessage(ctx context.Context, userID uint, req *validator.ChatRequest) (*ChatResponse, error)
	GetHistory(ctx context.Context, userID uint) ([]*models.ChatMessage, error)
}

type chatService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

// NewChatService creates the chat service.
func NewChatService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) ChatService {
	return &chatService{repo: repo, validator: v, logger: logger}
}

func (s *chatService) SendMessage(ctx context.Context, userID uint, req *validator.ChatRequest) (*ChatResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	lower := strings.ToLower(req.Message)
	intent := models.IntentGeneral
	var response string

	// Rules are checked in priority order; the first match wins.
	switch {
	case containsAny(lower, "training", "course", "learn"):
		intent = models.IntentTraining
		response = s.trainingResponse(ctx)
	case containsAny(lower, "idea", "suggestion"):
		intent = models.IntentIdea
		response = "That's great! Innovation drives us forward. You can submit your idea directly to the Team Hub."
	case containsAny(lower, "policy", "remote", "hr"):
		intent = models.IntentPolicy
		response = "<b>Remote Work Policy (Section 4.2):</b><br>Employees are permitted to work remotely up to 3 days a week with manager approval. Core hours are 10 AM - 3 PM."
	case containsAny(lower, "bug", "issue", "help"):
		intent = models.IntentSupport
		ticketID := fmt.Sprintf("IT-%d", rand.Intn(10000))
		response = fmt.Sprintf("I'm sorry you're facing an issue. I've logged ticket <b>#%s</b> for you. Support usually responds within 2 hours.", ticketID)
	default:
		response = "I can help you with HR policies, technical documentation, or finding training. What do you need?"
	}

	exchange := &models.ChatMessage{
		UserID:   userID,
		Message:  req.Message,
		Response: response,
		Intent:   intent,
	}
	if err := s.repo.Chat().Create(ctx, exchange); err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}

	return &ChatResponse{Response: response, Intent: intent}, nil
}

// trainingResponse recommends the highest-rated technical course.
func (s *chatService) trainingResponse(ctx context.Context) string {
	course, err := s.repo.Course().TopRatedByCategory(ctx, models.CategoryTechnical)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to load top rated course", "error", err)
		}
		return "I couldn't find a course matching your profile right now. Check the Learning Hub for the full catalog."
	}
	return fmt.Sprintf("I found a highly rated course for you: <b>'%s'</b>. It matches your technical profile.", course.Title)
}

func (s *chatService) GetHistory(ctx context.Context, userID uint) ([]*models.ChatMessage, error) {
	messages, err := s.repo.Chat().ListRecentByUser(ctx, userID, chatHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	if messages == nil {
		messages = []*models.ChatMessage{}
	}
	return messages, nil
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
