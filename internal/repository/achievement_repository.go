package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/questlog/backend/internal/model"
)

// AchievementRepository handles per-user achievement instances.
type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) List(ctx context.Context, userID uint) ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return achievements, nil
}

func (r *AchievementRepository) Count(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Achievement{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count achievements: %w", err)
	}
	return n, nil
}

// CreateBatch inserts a set of seeded instances in one statement. Rows that
// collide with an existing (user, definition) pair are skipped, which makes
// concurrent seeding a no-op instead of an error.
func (r *AchievementRepository) CreateBatch(ctx context.Context, achievements []model.Achievement) error {
	if len(achievements) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&achievements).Error; err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}
	return nil
}

// Save persists a single instance. Each achievement update is its own unit
// of work; a failure must not roll back sibling updates.
func (r *AchievementRepository) Save(ctx context.Context, achievement *model.Achievement) error {
	if err := r.db.WithContext(ctx).Save(achievement).Error; err != nil {
		return fmt.Errorf("save achievement: %w", err)
	}
	return nil
}
