package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/questlog/backend/internal/gamification"
	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
)

// achievementChecker re-evaluates a user's achievements. TaskService invokes
// it after a completion toggle; failures are logged, never surfaced, so the
// primary mutation still succeeds when the secondary check does not.
type achievementChecker interface {
	Check(ctx context.Context, userID uint) ([]model.Achievement, error)
}

// TaskInput carries the user-editable task fields.
type TaskInput struct {
	Title string
	Due   *time.Time
}

// TaskUpdate is a partial edit. A nil field leaves the value untouched;
// ClearDue removes the due date.
type TaskUpdate struct {
	Title    *string
	Due      *time.Time
	ClearDue bool
}

// TaskToggleResult is the response shape of a completion toggle.
type TaskToggleResult struct {
	Task    *model.Task   `json:"task"`
	Rewards RewardOutcome `json:"rewards"`
}

// TaskService owns the task lifecycle and the task-side reward path.
type TaskService struct {
	db           *gorm.DB
	tasks        *repository.TaskRepository
	users        *repository.UserRepository
	bonuses      *repository.DailyBonusRepository
	achievements achievementChecker
	notifier     Notifier
	now          func() time.Time
}

func NewTaskService(db *gorm.DB, tasks *repository.TaskRepository, users *repository.UserRepository, bonuses *repository.DailyBonusRepository, notifier Notifier) *TaskService {
	return &TaskService{
		db:       db,
		tasks:    tasks,
		users:    users,
		bonuses:  bonuses,
		notifier: notifierOrNop(notifier),
		now:      time.Now,
	}
}

// SetAchievementChecker wires the post-toggle achievement re-evaluation.
// Must be called before the service handles requests.
func (s *TaskService) SetAchievementChecker(c achievementChecker) {
	s.achievements = c
}

func (s *TaskService) List(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.tasks.ListActive(ctx, userID)
}

func (s *TaskService) ListArchived(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.tasks.ListArchived(ctx, userID)
}

func (s *TaskService) Create(ctx context.Context, userID uint, in TaskInput) (*model.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	task := &model.Task{
		UserID: userID,
		Title:  in.Title,
		Due:    in.Due,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update edits title and due date. Changing an existing due date counts as a
// reschedule, which the procrastination achievement tracks.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, upd TaskUpdate) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		task.Title = *upd.Title
	}
	switch {
	case upd.ClearDue:
		task.Due = nil
	case upd.Due != nil:
		if task.Due != nil && !task.Due.Equal(*upd.Due) {
			task.Reschedules++
		}
		due := *upd.Due
		task.Due = &due
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	return s.tasks.Delete(ctx, userID, taskID)
}

// Complete toggles a task's completion state and applies the reward rules:
// +1 XP on completion, -1 XP on un-completion, plus the once-per-day bonus
// when the toggle finishes every task due today. The task write, the bonus
// ledger entry and the user totals commit in one transaction; afterwards the
// user's achievements are re-evaluated and the result pushed to the
// notification feed.
func (s *TaskService) Complete(ctx context.Context, userID, taskID uint) (*TaskToggleResult, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	transition := gamification.TaskTransition{
		WasCompleted: task.Completed,
		IsCompleted:  !task.Completed,
	}

	if transition.IsCompleted {
		dayStart := startOfDay(now)
		due, err := s.tasks.ListDueBetween(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		allDone := len(due) > 0
		for _, t := range due {
			if t.ID != task.ID && !t.Completed {
				allDone = false
				break
			}
		}
		transition.AllDueTodayDone = allDone

		granted, err := s.bonuses.Granted(ctx, userID, gamification.Day(now))
		if err != nil {
			return nil, err
		}
		transition.BonusAlreadyGranted = granted
	}

	var outcome RewardOutcome
	err = s.db.Transaction(func(tx *gorm.DB) error {
		tasks := s.tasks.WithTx(tx)
		users := s.users.WithTx(tx)
		bonuses := s.bonuses.WithTx(tx)

		task.Completed = transition.IsCompleted
		if err := tasks.Save(ctx, task); err != nil {
			return err
		}

		reward := gamification.TaskReward(transition)
		if transition.IsCompleted && transition.AllDueTodayDone && !transition.BonusAlreadyGranted {
			granted, err := bonuses.Record(ctx, &model.DailyBonus{
				UserID:     userID,
				Day:        gamification.Day(now),
				XPAmount:   gamification.XPDailyBonus,
				GoldAmount: gamification.GoldDailyBonus,
			})
			if err != nil {
				return err
			}
			if !granted {
				// A concurrent toggle recorded the bonus first; the unique
				// ledger index is the authority, not our earlier read.
				withoutBonus := transition
				withoutBonus.BonusAlreadyGranted = true
				reward = gamification.TaskReward(withoutBonus)
			}
		}

		out, err := applyReward(ctx, users, userID, reward)
		if err != nil {
			return err
		}
		outcome = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.achievements != nil {
		if _, err := s.achievements.Check(ctx, userID); err != nil {
			log.Printf("achievement check after task toggle: %v", err)
		}
	}
	if outcome.XPChange != 0 || outcome.GoldChange != 0 {
		s.notifier.RewardGranted(userID, outcome)
	}

	return &TaskToggleResult{Task: task, Rewards: outcome}, nil
}

// ArchiveCompleted archives the user's tasks completed before today.
// Returns the number of tasks archived.
func (s *TaskService) ArchiveCompleted(ctx context.Context, userID uint) (int64, error) {
	now := s.now()
	return s.tasks.ArchiveCompletedBefore(ctx, userID, startOfDay(now), now)
}
