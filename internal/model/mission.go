package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MissionStatus is derived from progress versus target, except that an
// explicit archive forces completed.
type MissionStatus string

const (
	MissionBacklog    MissionStatus = "backlog"
	MissionInProgress MissionStatus = "in_progress"
	MissionCompleted  MissionStatus = "completed"
)

// StatusForProgress derives the mission status from a progress value.
func StatusForProgress(progress, target int) MissionStatus {
	switch {
	case progress >= target:
		return MissionCompleted
	case progress > 0:
		return MissionInProgress
	default:
		return MissionBacklog
	}
}

// ProgressPoint is one entry of a mission's append-only progress log.
type ProgressPoint struct {
	Date     time.Time `json:"date"`
	Progress int       `json:"progress"`
}

// ProgressHistory stores the progress log as a JSON text column.
type ProgressHistory []ProgressPoint

// Value implements driver.Valuer.
func (h ProgressHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("marshal progress history: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (h *ProgressHistory) Scan(value any) error {
	if value == nil {
		*h = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan progress history: unsupported type %T", value)
	}
	if len(data) == 0 {
		*h = nil
		return nil
	}
	return json.Unmarshal(data, h)
}

// Mission is a long-running goal with a numeric target.
type Mission struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint            `gorm:"index" json:"-"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Progress    int             `gorm:"default:0" json:"progress"`
	Target      int             `json:"target"`
	Status      MissionStatus   `gorm:"size:16;default:backlog" json:"status"`
	History     ProgressHistory `gorm:"type:text" json:"progressHistory"`
	OnDashboard bool            `gorm:"default:false" json:"isOnDashboard"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
