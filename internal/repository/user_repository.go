package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/questlog/backend/internal/model"
)

// UserRepository handles user rows and the versioned progression updates.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by name: %w", err)
	}
	return &user, nil
}

// UpdateTotals writes new XP/gold/level totals guarded by the optimistic
// version the caller loaded. A concurrent writer bumps the version first and
// this call reports ErrConflict instead of silently losing an update.
func (r *UserRepository) UpdateTotals(ctx context.Context, user *model.User, xp, gold, level int) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Updates(map[string]any{
			"xp":      xp,
			"gold":    gold,
			"level":   level,
			"version": user.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("update user totals: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	user.XP = xp
	user.Gold = gold
	user.Level = level
	user.Version++
	return nil
}
