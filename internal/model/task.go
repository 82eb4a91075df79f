package model

import "time"

// Task is a single to-do item. UpdatedAt doubles as the completion-toggle
// timestamp, which the achievement rules read. Reschedules counts due-date
// changes since creation.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index" json:"-"`
	Title       string     `json:"title"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Due         *time.Time `json:"date,omitempty"`
	Reschedules int        `gorm:"default:0" json:"reschedules"`
	Archived    bool       `gorm:"default:false;index" json:"archived"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
