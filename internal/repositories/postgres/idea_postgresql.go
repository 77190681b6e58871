package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
)

type ideaRepository struct {
	db *gorm.DB
}

func NewIdeaPostgreSQL(db *gorm.DB) repositories.IdeaRepository {
	return &ideaRepository{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *ideaRepository) Create(ctx context.Context, idea *models.Idea) error {
	if err := r.db.WithContext(ctx).Create(idea).Error; err != nil {
		return handleDBError(err, "create idea")
	}
	// Reload the author so callers can build the public projection.
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(idea, idea.ID).Error
	if err != nil {
		return handleDBError(err, "reload idea author")
	}
	return nil
}

func (r *ideaRepository) GetByID(ctx context.Context, id uint) (*models.Idea, error) {
	var idea models.Idea
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Votes").
		Preload("Comments").
		First(&idea, id).Error
	if err != nil {
		return nil, handleDBError(err, "get idea by id")
	}
	return &idea, nil
}

func (r *ideaRepository) List(ctx context.Context, filters repositories.IdeaFilters) ([]*models.Idea, error) {
	var ideas []*models.Idea

	query := r.db.WithContext(ctx).
		Model(&models.Idea{}).
		Preload("Author").
		Preload("Votes").
		Preload("Comments").
		Order("created_at DESC")

	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.AuthorID != nil {
		query = query.Where("author_id = ?", *filters.AuthorID)
	}

	if err := query.Find(&ideas).Error; err != nil {
		return nil, handleDBError(err, "list ideas")
	}
	return ideas, nil
}

func (r *ideaRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Idea{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, handleDBError(err, "count ideas by author")
	}
	return count, nil
}

// ===== VOTE SET OPERATIONS =====

// AddVote inserts the voter if absent; a duplicate vote is a no-op thanks to
// the composite unique index.
func (r *ideaRepository) AddVote(ctx context.Context, ideaID, userID uint) error {
	vote := models.IdeaVote{IdeaID: ideaID, UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&vote).Error
	if err != nil {
		return handleDBError(err, "add vote")
	}
	return nil
}

func (r *ideaRepository) RemoveVote(ctx context.Context, ideaID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("idea_id = ? AND user_id = ?", ideaID, userID).
		Delete(&models.IdeaVote{}).Error
	if err != nil {
		return handleDBError(err, "remove vote")
	}
	return nil
}

func (r *ideaRepository) HasVoted(ctx context.Context, ideaID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.IdeaVote{}).
		Where("idea_id = ? AND user_id = ?", ideaID, userID).
		Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check vote")
	}
	return count > 0, nil
}

func (r *ideaRepository) CountVotes(ctx context.Context, ideaID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.IdeaVote{}).
		Where("idea_id = ?", ideaID).
		Count(&count).Error
	if err != nil {
		return 0, handleDBError(err, "count votes")
	}
	return count, nil
}

// ===== COMMENT OPERATIONS =====

func (r *ideaRepository) AddComment(ctx context.Context, comment *models.IdeaComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return handleDBError(err, "add comment")
	}
	return nil
}

func (r *ideaRepository) GetComments(ctx context.Context, ideaID uint) ([]*models.IdeaComment, error) {
	var comments []*models.IdeaComment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("idea_id = ?", ideaID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, handleDBError(err, "get comments")
	}
	return comments, nil
}

func (r *ideaRepository) DeleteAll(ctx context.Context) error {
	for _, model := range []interface{}{&models.IdeaVote{}, &models.IdeaComment{}, &models.Idea{}} {
		err := r.db.WithContext(ctx).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(model).Error
		if err != nil {
			return handleDBError(err, "delete all ideas")
		}
	}
	return nil
}
