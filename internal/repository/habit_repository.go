package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/questlog/backend/internal/model"
)

// HabitRepository handles CRUD for habits.
type HabitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

func (r *HabitRepository) Create(ctx context.Context, habit *model.Habit) error {
	if err := r.db.WithContext(ctx).Create(habit).Error; err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

func (r *HabitRepository) FindByID(ctx context.Context, userID uint, habitID string) (*model.Habit, error) {
	var habit model.Habit
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, habitID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find habit: %w", err)
	}
	return &habit, nil
}

func (r *HabitRepository) List(ctx context.Context, userID uint) ([]model.Habit, error) {
	var habits []model.Habit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

func (r *HabitRepository) Save(ctx context.Context, habit *model.Habit) error {
	if err := r.db.WithContext(ctx).Save(habit).Error; err != nil {
		return fmt.Errorf("save habit: %w", err)
	}
	return nil
}

func (r *HabitRepository) Delete(ctx context.Context, userID uint, habitID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, habitID).Delete(&model.Habit{})
	if res.Error != nil {
		return fmt.Errorf("delete habit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
