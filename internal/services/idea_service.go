package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/nexus-hub/engagement-service/internal/cache"
	"github.com/nexus-hub/engagement-service/internal/events"
	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

// Sort orders accepted by the idea board listing.
const (
	SortTrending = "trending"
	SortLatest   = "latest"
)

// IdeaResponse is a board entry annotated with counts and the requesting
// user's vote state.
type IdeaResponse struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     models.IdeaCategory `json:"category"`
	Status       models.IdeaStatus   `json:"status"`
	Author       models.AuthorInfo   `json:"author"`
	VoteCount    int                 `json:"voteCount"`
	HasVoted     bool                `json:"hasVoted"`
	CommentCount int                 `json:"commentCount"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// VoteResponse reports the vote state after a toggle.
type VoteResponse struct {
	VoteCount int  `json:"voteCount"`
	HasVoted  bool `json:"hasVoted"`
}

// CommentResponse is one comment with its author resolved.
type CommentResponse struct {
	ID        uint              `json:"id"`
	Author    models.AuthorInfo `json:"author"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"createdAt"`
}

// IdeaService covers the idea board: submissions, voting, comments and the
// spreadsheet export.
type IdeaService interface {
	List(ctx context.Context, userID uint, category *models.IdeaCategory, sortBy string) ([]*IdeaResponse, error)
	Create(ctx context.Context, authorID uint, req *validator.CreateIdeaRequest) (*IdeaResponse, error)
	ToggleVote(ctx context.Context, ideaID, userID uint) (*VoteResponse, error)
	AddComment(ctx context.Context, ideaID, userID uint, req *validator.AddCommentRequest) ([]*CommentResponse, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
}

type ideaService struct {
	repo      repositories.Repository
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewIdeaService creates the idea board service.
func NewIdeaService(
	repo repositories.Repository,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	logger *slog.Logger,
) IdeaService {
	return &ideaService{
		repo:      repo,
		validator: v,
		cache:     cacheManager,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *ideaService) List(ctx context.Context, userID uint, category *models.IdeaCategory, sortBy string) ([]*IdeaResponse, error) {
	ideas, err := s.repo.Idea().List(ctx, repositories.IdeaFilters{Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}

	out := make([]*IdeaResponse, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, projectIdea(idea, userID))
	}

	// The repository returns newest first, which is the "latest" order;
	// trending re-ranks by vote count with recency breaking ties.
	if sortBy == SortTrending || sortBy == "" {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].VoteCount != out[j].VoteCount {
				return out[i].VoteCount > out[j].VoteCount
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}

func projectIdea(idea *models.Idea, userID uint) *IdeaResponse {
	hasVoted := false
	for _, v := range idea.Votes {
		if v.UserID == userID {
			hasVoted = true
			break
		}
	}
	return &IdeaResponse{
		ID:           idea.ID,
		Title:        idea.Title,
		Description:  idea.Description,
		Category:     idea.Category,
		Status:       idea.Status,
		Author:       idea.Author.Author(),
		VoteCount:    len(idea.Votes),
		HasVoted:     hasVoted,
		CommentCount: len(idea.Comments),
		CreatedAt:    idea.CreatedAt,
	}
}

func (s *ideaService) Create(ctx context.Context, authorID uint, req *validator.CreateIdeaRequest) (*IdeaResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	idea := &models.Idea{
		Title:       req.Title,
		Description: req.Description,
		Category:    models.IdeaCategory(req.Category),
		Status:      models.IdeaPending,
		AuthorID:    authorID,
	}
	if err := s.repo.Idea().Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to create idea: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeIdeaCreated, events.IdeaCreatedEvent{
		IdeaID:   idea.ID,
		AuthorID: authorID,
		Category: string(idea.Category),
		Title:    idea.Title,
	})); err != nil {
		s.logger.Error("failed to publish idea.created event", "error", err, "idea_id", idea.ID)
	}

	// The dashboard aggregate counts authored ideas.
	if err := s.cache.InvalidateUserStats(ctx, authorID); err != nil {
		s.logger.Warn("failed to invalidate stats cache", "error", err, "user_id", authorID)
	}

	s.logger.Info("idea created", "idea_id", idea.ID, "author_id", authorID)
	return projectIdea(idea, authorID), nil
}

func (s *ideaService) ToggleVote(ctx context.Context, ideaID, userID uint) (*VoteResponse, error) {
	if _, err := s.repo.Idea().GetByID(ctx, ideaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load idea: %w", err)
	}

	hadVoted, err := s.repo.Idea().HasVoted(ctx, ideaID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check vote: %w", err)
	}

	if hadVoted {
		err = s.repo.Idea().RemoveVote(ctx, ideaID, userID)
	} else {
		err = s.repo.Idea().AddVote(ctx, ideaID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle vote: %w", err)
	}

	count, err := s.repo.Idea().CountVotes(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	return &VoteResponse{VoteCount: int(count), HasVoted: !hadVoted}, nil
}

func (s *ideaService) AddComment(ctx context.Context, ideaID, userID uint, req *validator.AddCommentRequest) ([]*CommentResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	if _, err := s.repo.Idea().GetByID(ctx, ideaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load idea: %w", err)
	}

	comment := &models.IdeaComment{
		IdeaID: ideaID,
		UserID: userID,
		Text:   req.Text,
	}
	if err := s.repo.Idea().AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	comments, err := s.repo.Idea().GetComments(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	out := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, &CommentResponse{
			ID:        c.ID,
			Author:    c.User.Author(),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}

// ExportXLSX renders the whole idea board as a spreadsheet for offline review.
func (s *ideaService) ExportXLSX(ctx context.Context) ([]byte, error) {
	ideas, err := s.repo.Idea().List(ctx, repositories.IdeaFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ideas"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Title", "Description", "Category", "Status", "Author", "Votes", "Comments", "Submitted"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, idea := range ideas {
		values := []interface{}{
			idea.ID,
			idea.Title,
			idea.Description,
			string(idea.Category),
			string(idea.Status),
			idea.Author.Name,
			len(idea.Votes),
			len(idea.Comments),
			idea.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	s.logger.Info("idea board exported", "ideas", len(ideas))
	return buf.Bytes(), nil
}
