package model

import "time"

// User holds identity plus the progression totals the reward engine mutates.
// Version backs the optimistic concurrency check on reward writes.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64" json:"username"`
	PasswordHash string    `json:"-"`
	XP           int       `gorm:"default:0" json:"xp"`
	Gold         int       `gorm:"default:0" json:"gold"`
	Level        int       `gorm:"default:1" json:"level"`
	Version      int       `gorm:"default:0" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
