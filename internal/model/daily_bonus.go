package model

import "time"

// DailyBonus is the once-per-day bonus ledger. The unique (user, day) index
// makes the grant idempotent at the store level, closing the find-before-
// insert race between concurrent toggles.
type DailyBonus struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_bonus_user_day" json:"-"`
	Day        string    `gorm:"size:10;uniqueIndex:idx_bonus_user_day" json:"day"`
	XPAmount   int       `json:"xpAmount"`
	GoldAmount int       `json:"goldAmount"`
	CreatedAt  time.Time `json:"createdAt"`
}
