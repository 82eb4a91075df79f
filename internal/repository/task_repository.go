package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/questlog/backend/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// ListActive returns the user's unarchived tasks, newest first.
func (r *TaskRepository) ListActive(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListArchived returns the user's archived tasks, most recently archived first.
func (r *TaskRepository) ListArchived(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, true).
		Order("archived_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list archived tasks: %w", err)
	}
	return tasks, nil
}

// ListDueBetween returns the user's unarchived tasks whose due date falls in
// [from, to). The daily-bonus rule uses this for the "due today" set.
func (r *TaskRepository) ListDueBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND archived = ? AND due >= ? AND due < ?", userID, false, from, to).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every task the user owns, archived ones included. Achievement
// evaluation reads history through this.
func (r *TaskRepository) List(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	return tasks, nil
}

// ArchiveCompletedBefore archives the user's completed, unarchived tasks
// whose last toggle happened before the cutoff. Returns the number archived.
func (r *TaskRepository) ArchiveCompletedBefore(ctx context.Context, userID uint, cutoff, archivedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND completed = ? AND archived = ? AND updated_at < ?", userID, true, false, cutoff).
		Updates(map[string]any{
			"archived":    true,
			"archived_at": archivedAt,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("archive completed tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ArchiveAllCompletedBefore is the nightly-job variant of
// ArchiveCompletedBefore, spanning every user.
func (r *TaskRepository) ArchiveAllCompletedBefore(ctx context.Context, cutoff, archivedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("completed = ? AND archived = ? AND updated_at < ?", true, false, cutoff).
		Updates(map[string]any{
			"archived":    true,
			"archived_at": archivedAt,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("archive completed tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}
