package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
)

type chatRepository struct {
	db *gorm.DB
}

func NewChatPostgreSQL(db *gorm.DB) repositories.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return handleDBError(err, "create chat message")
	}
	return nil
}

func (r *chatRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, handleDBError(err, "list chat history")
	}
	return messages, nil
}
