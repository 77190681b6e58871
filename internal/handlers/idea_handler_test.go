package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/services"
	"github.com/nexus-hub/engagement-service/internal/utils"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

type stubIdeaService struct{}

func (s *stubIdeaService) List(ctx context.Context, userID uint, category *models.IdeaCategory, sortBy string) ([]*services.IdeaResponse, error) {
	return []*services.IdeaResponse{}, nil
}

func (s *stubIdeaService) Create(ctx context.Context, authorID uint, req *validator.CreateIdeaRequest) (*services.IdeaResponse, error) {
	return &services.IdeaResponse{ID: 1, Title: req.Title}, nil
}

func (s *stubIdeaService) ToggleVote(ctx context.Context, ideaID, userID uint) (*services.VoteResponse, error) {
	return &services.VoteResponse{VoteCount: 1, HasVoted: true}, nil
}

func (s *stubIdeaService) AddComment(ctx context.Context, ideaID, userID uint, req *validator.AddCommentRequest) ([]*services.CommentResponse, error) {
	return []*services.CommentResponse{{ID: 1, Text: req.Text}}, nil
}

func (s *stubIdeaService) ExportXLSX(ctx context.Context) ([]byte, error) {
	return nil, nil
}

func newTestIdeaRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	handler := NewIdeaHandler(&stubIdeaService{}, logger)

	router := gin.New()
	authed := router.Group("/api", func(c *gin.Context) {
		c.Set(contextUserIDKey, uint(1))
	})
	authed.POST("/ideas", handler.CreateIdea)
	authed.POST("/ideas/:id/comments", handler.AddComment)
	return router
}

func TestIdeaHandler_AddComment_ReturnsThreadWith200(t *testing.T) {
	router := newTestIdeaRouter(t)

	body := bytes.NewBufferString(`{"text":"Love this"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ideas/1/comments", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var comments []*services.CommentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &comments); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(comments) != 1 || comments[0].Text != "Love this" {
		t.Errorf("Expected the full thread in the response, got %+v", comments)
	}
}

func TestIdeaHandler_CreateIdea_Returns201(t *testing.T) {
	router := newTestIdeaRouter(t)

	body := bytes.NewBufferString(`{"title":"Async Standup Notes","description":"Shared doc instead of a call.","category":"Process Improvement"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ideas", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
}
