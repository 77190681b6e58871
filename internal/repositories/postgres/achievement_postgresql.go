package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
)

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementPostgreSQL(db *gorm.DB) repositories.AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	if err := r.db.WithContext(ctx).Create(achievement).Error; err != nil {
		return handleDBError(err, "create achievement")
	}
	return nil
}

func (r *achievementRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&achievements).Error
	if err != nil {
		return nil, handleDBError(err, "list achievements")
	}
	return achievements, nil
}

func (r *achievementRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Limit(limit).
		Find(&achievements).Error
	if err != nil {
		return nil, handleDBError(err, "list recent achievements")
	}
	return achievements, nil
}

func (r *achievementRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Achievement{}).Error
	if err != nil {
		return handleDBError(err, "delete all achievements")
	}
	return nil
}
