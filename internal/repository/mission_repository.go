package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/questlog/backend/internal/model"
)

// MissionRepository handles CRUD for missions.
type MissionRepository struct {
	db *gorm.DB
}

func NewMissionRepository(db *gorm.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *MissionRepository) WithTx(tx *gorm.DB) *MissionRepository {
	return &MissionRepository{db: tx}
}

func (r *MissionRepository) Create(ctx context.Context, mission *model.Mission) error {
	if err := r.db.WithContext(ctx).Create(mission).Error; err != nil {
		return fmt.Errorf("create mission: %w", err)
	}
	return nil
}

func (r *MissionRepository) FindByID(ctx context.Context, userID uint, missionID string) (*model.Mission, error) {
	var mission model.Mission
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, missionID).First(&mission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find mission: %w", err)
	}
	return &mission, nil
}

func (r *MissionRepository) List(ctx context.Context, userID uint) ([]model.Mission, error) {
	var missions []model.Mission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&missions).Error; err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	return missions, nil
}

func (r *MissionRepository) Save(ctx context.Context, mission *model.Mission) error {
	if err := r.db.WithContext(ctx).Save(mission).Error; err != nil {
		return fmt.Errorf("save mission: %w", err)
	}
	return nil
}

func (r *MissionRepository) Delete(ctx context.Context, userID uint, missionID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, missionID).Delete(&model.Mission{})
	if res.Error != nil {
		return fmt.Errorf("delete mission: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
