package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateList stores a set of calendar-day strings as a JSON text column.
type DateList []string

// Value implements driver.Valuer.
func (d DateList) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal date list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (d *DateList) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan date list: unsupported type %T", value)
	}
	if len(data) == 0 {
		*d = nil
		return nil
	}
	return json.Unmarshal(data, d)
}

// Habit is a recurring practice tracked by calendar-day completions.
// Streak is a cache recomputed from CompletedDates on every mutation;
// CompletedDates is the source of truth.
type Habit struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         uint      `gorm:"index" json:"-"`
	Name           string    `json:"name"`
	CompletedDates DateList  `gorm:"type:text" json:"completedDates"`
	Streak         int       `gorm:"default:0" json:"streak"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
