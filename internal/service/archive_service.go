package service

import (
	"context"
	"log"
	"time"

	"github.com/questlog/backend/internal/repository"
)

// ArchiveService runs the nightly sweep that archives tasks completed on a
// previous day, across all users.
type ArchiveService struct {
	tasks *repository.TaskRepository
	now   func() time.Time
}

func NewArchiveService(tasks *repository.TaskRepository) *ArchiveService {
	return &ArchiveService{
		tasks: tasks,
		now:   time.Now,
	}
}

// Run archives every completed, unarchived task whose last toggle happened
// before today.
func (s *ArchiveService) Run(ctx context.Context) (int64, error) {
	now := s.now()
	return s.tasks.ArchiveAllCompletedBefore(ctx, startOfDay(now), now)
}

// Schedule registers the sweep with the scheduler at the given HH:MM time.
func (s *ArchiveService) Schedule(scheduler *SchedulerService, timeStr string) error {
	_, err := scheduler.ScheduleDaily(timeStr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := s.Run(ctx)
		if err != nil {
			log.Printf("archive sweep: %v", err)
			return
		}
		if n > 0 {
			log.Printf("archive sweep: archived %d tasks", n)
		}
	})
	return err
}
