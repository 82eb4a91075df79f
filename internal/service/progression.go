package service

import (
	"context"
	"errors"
	"time"

	"github.com/questlog/backend/internal/gamification"
	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
)

// ErrInvalidInput marks validation failures the HTTP layer maps to 400.
var ErrInvalidInput = errors.New("invalid input")

// RewardOutcome is the delta a mutation produced, in the wire shape the
// handlers return. NewLevel is set only when the user leveled up.
type RewardOutcome struct {
	XPChange   int  `json:"xpChange"`
	GoldChange int  `json:"goldChange"`
	NewLevel   *int `json:"newLevel"`
}

// applyReward loads the user, applies the reward with clamping, recomputes
// the level and persists the new totals under the optimistic version check.
// The users repository must be bound to the surrounding transaction.
func applyReward(ctx context.Context, users *repository.UserRepository, userID uint, reward gamification.Reward) (RewardOutcome, error) {
	out := RewardOutcome{XPChange: reward.XPChange, GoldChange: reward.GoldChange}
	if reward.IsZero() {
		return out, nil
	}

	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return out, err
	}

	xp, gold := reward.Apply(user.XP, user.Gold)
	level := gamification.LevelForXP(xp)
	if level > user.Level {
		newLevel := level
		out.NewLevel = &newLevel
	}
	if err := users.UpdateTotals(ctx, user, xp, gold, level); err != nil {
		return out, err
	}
	return out, nil
}

// startOfDay truncates a timestamp to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// taskFacts converts task rows into the snapshot shape the achievement
// progress rules evaluate.
func taskFacts(tasks []model.Task) []gamification.TaskFact {
	facts := make([]gamification.TaskFact, 0, len(tasks))
	for _, t := range tasks {
		fact := gamification.TaskFact{
			CreatedAt:   t.CreatedAt,
			Completed:   t.Completed,
			Reschedules: t.Reschedules,
		}
		if t.Completed {
			fact.CompletedAt = t.UpdatedAt
		}
		if t.Due != nil {
			fact.Due = *t.Due
		}
		facts = append(facts, fact)
	}
	return facts
}
