package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/questlog/backend/internal/gamification"
	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
)

// HabitUpdate is a partial edit. Supplying CompletedDates replaces the whole
// set and triggers a streak recompute.
type HabitUpdate struct {
	Name           *string
	CompletedDates *[]string
}

// HabitService owns habits and keeps the cached streak consistent with the
// completion-date set.
type HabitService struct {
	habits *repository.HabitRepository
	now    func() time.Time
}

func NewHabitService(habits *repository.HabitRepository) *HabitService {
	return &HabitService{
		habits: habits,
		now:    time.Now,
	}
}

// List returns the user's habits with streaks recomputed as of today. The
// stored streak is a cache of the last mutation; a day passing without a
// completion must drop it to zero on the next read.
func (s *HabitService) List(ctx context.Context, userID uint) ([]model.Habit, error) {
	habits, err := s.habits.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range habits {
		habits[i].Streak = gamification.ComputeStreak(habits[i].CompletedDates, now)
	}
	return habits, nil
}

func (s *HabitService) Create(ctx context.Context, userID uint, name string) (*model.Habit, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	habit := &model.Habit{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           name,
		CompletedDates: model.DateList{},
	}
	if err := s.habits.Create(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Update edits a habit. When the completion-date set changes, the streak is
// recomputed server-side from the supplied dates; the stored streak is only
// ever a cache of that computation.
func (s *HabitService) Update(ctx context.Context, userID uint, habitID string, upd HabitUpdate) (*model.Habit, error) {
	habit, err := s.habits.FindByID(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		habit.Name = *upd.Name
	}
	if upd.CompletedDates != nil {
		habit.CompletedDates = normalizeDates(*upd.CompletedDates)
		habit.Streak = gamification.ComputeStreak(habit.CompletedDates, s.now())
	}

	if err := s.habits.Save(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, userID uint, habitID string) error {
	return s.habits.Delete(ctx, userID, habitID)
}

// normalizeDates deduplicates and sorts day strings, dropping anything that
// is not a valid calendar-day identifier.
func normalizeDates(dates []string) model.DateList {
	seen := make(map[string]bool, len(dates))
	out := make(model.DateList, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		if _, err := time.Parse(gamification.DayFormat, d); err != nil {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
