package model

import "time"

// Achievement is a per-user instance of a catalog definition. One row exists
// per (user, definition); Achieved is monotonic and AchievedAt is stamped
// exactly once, at the first unlock.
type Achievement struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       uint       `gorm:"uniqueIndex:idx_user_definition" json:"-"`
	DefinitionID string     `gorm:"size:64;uniqueIndex:idx_user_definition" json:"definitionId"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Tier         string     `json:"level"`
	XPReward     int        `json:"xpReward"`
	Progress     int        `gorm:"default:0" json:"progress"`
	Target       int        `json:"target"`
	Achieved     bool       `gorm:"default:false" json:"achieved"`
	AchievedAt   *time.Time `json:"achievedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
