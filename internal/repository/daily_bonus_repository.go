package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/questlog/backend/internal/model"
)

// DailyBonusRepository is the once-per-day bonus ledger.
type DailyBonusRepository struct {
	db *gorm.DB
}

func NewDailyBonusRepository(db *gorm.DB) *DailyBonusRepository {
	return &DailyBonusRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *DailyBonusRepository) WithTx(tx *gorm.DB) *DailyBonusRepository {
	return &DailyBonusRepository{db: tx}
}

// Granted reports whether a bonus has already been recorded for the user on
// the given calendar day.
func (r *DailyBonusRepository) Granted(ctx context.Context, userID uint, day string) (bool, error) {
	var bonus model.DailyBonus
	err := r.db.WithContext(ctx).Where("user_id = ? AND day = ?", userID, day).First(&bonus).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("lookup daily bonus: %w", err)
}

// Record inserts a ledger entry for the user/day pair. The unique index makes
// the insert idempotent: when another request got there first, Record reports
// granted=false without error and the caller skips the bonus.
func (r *DailyBonusRepository) Record(ctx context.Context, bonus *model.DailyBonus) (granted bool, err error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(bonus)
	if res.Error != nil {
		return false, fmt.Errorf("record daily bonus: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
