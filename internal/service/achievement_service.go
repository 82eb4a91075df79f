package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/questlog/backend/internal/gamification"
	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
)

// AchievementService seeds per-user achievement instances from the catalog
// and re-evaluates them against the user's current state.
type AchievementService struct {
	db           *gorm.DB
	achievements *repository.AchievementRepository
	tasks        *repository.TaskRepository
	users        *repository.UserRepository
	notifier     Notifier
	now          func() time.Time
}

func NewAchievementService(db *gorm.DB, achievements *repository.AchievementRepository, tasks *repository.TaskRepository, users *repository.UserRepository, notifier Notifier) *AchievementService {
	return &AchievementService{
		db:           db,
		achievements: achievements,
		tasks:        tasks,
		users:        users,
		notifier:     notifierOrNop(notifier),
		now:          time.Now,
	}
}

// Seed creates one locked instance per catalog definition for the user.
// It is idempotent: existing instances are left alone, and the unique
// (user, definition) index absorbs concurrent seeding.
func (s *AchievementService) Seed(ctx context.Context, userID uint) ([]model.Achievement, error) {
	n, err := s.achievements.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		instances := make([]model.Achievement, 0, len(gamification.Catalog()))
		for _, def := range gamification.Catalog() {
			instances = append(instances, model.Achievement{
				ID:           uuid.NewString(),
				UserID:       userID,
				DefinitionID: def.ID,
				Name:         def.Name,
				Description:  def.Description,
				Category:     string(def.Category),
				Tier:         string(def.Tier),
				XPReward:     def.XPReward,
				Target:       def.Target,
			})
		}
		if err := s.achievements.CreateBatch(ctx, instances); err != nil {
			return nil, err
		}
	}
	return s.achievements.List(ctx, userID)
}

// List returns the user's achievement instances, seeding them first when the
// set is empty.
func (s *AchievementService) List(ctx context.Context, userID uint) ([]model.Achievement, error) {
	n, err := s.achievements.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return s.Seed(ctx, userID)
	}
	return s.achievements.List(ctx, userID)
}

// Check recomputes progress for every locked instance against the user's
// current tasks and XP total. An instance whose progress reaches its target
// transitions to achieved exactly once: the reward grant, the progress write
// and the AchievedAt stamp commit together. Already-achieved instances are
// terminal and skipped. Each instance is an independent unit of work — a
// persistence failure is logged and the rest of the batch continues.
func (s *AchievementService) Check(ctx context.Context, userID uint) ([]model.Achievement, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	instances, err := s.achievements.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &gamification.Snapshot{
		Now:   s.now(),
		XP:    user.XP,
		Tasks: taskFacts(tasks),
	}

	for i := range instances {
		inst := &instances[i]
		if inst.Achieved {
			continue
		}
		def, ok := gamification.DefinitionByID(inst.DefinitionID)
		if !ok {
			log.Printf("achievement %s references unknown definition %q", inst.ID, inst.DefinitionID)
			continue
		}

		progress := def.Progress(snap)
		if progress == inst.Progress {
			continue
		}
		inst.Progress = progress

		if progress < inst.Target {
			if err := s.achievements.Save(ctx, inst); err != nil {
				log.Printf("persist achievement progress %s: %v", inst.DefinitionID, err)
			}
			continue
		}

		achievedAt := s.now()
		inst.Achieved = true
		inst.AchievedAt = &achievedAt

		var outcome RewardOutcome
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := repository.NewAchievementRepository(tx).Save(ctx, inst); err != nil {
				return err
			}
			out, err := applyReward(ctx, s.users.WithTx(tx), userID, gamification.AchievementReward(inst.XPReward))
			if err != nil {
				return err
			}
			outcome = out
			return nil
		})
		if err != nil {
			// Leave the instance locked in the store; a later check retries.
			inst.Achieved = false
			inst.AchievedAt = nil
			log.Printf("unlock achievement %s: %v", inst.DefinitionID, err)
			continue
		}

		s.notifier.AchievementUnlocked(userID, *inst)
		s.notifier.RewardGranted(userID, outcome)
	}

	return instances, nil
}
