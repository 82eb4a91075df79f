package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/questlog/backend/internal/gamification"
	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
)

// MissionInput carries the user-editable mission fields.
type MissionInput struct {
	Title       string
	Description string
	Target      int
	OnDashboard bool
}

// MissionUpdate is a partial edit of the non-progress fields.
type MissionUpdate struct {
	Title       *string
	Description *string
	OnDashboard *bool
}

// MissionResult is the response shape of a progress or archive mutation.
// Rewards is nil when the completion state did not flip.
type MissionResult struct {
	Mission *model.Mission `json:"mission"`
	Rewards *RewardOutcome `json:"rewards,omitempty"`
}

// MissionService owns the mission lifecycle and the mission reward path.
type MissionService struct {
	db       *gorm.DB
	missions *repository.MissionRepository
	users    *repository.UserRepository
	notifier Notifier
	now      func() time.Time
}

func NewMissionService(db *gorm.DB, missions *repository.MissionRepository, users *repository.UserRepository, notifier Notifier) *MissionService {
	return &MissionService{
		db:       db,
		missions: missions,
		users:    users,
		notifier: notifierOrNop(notifier),
		now:      time.Now,
	}
}

func (s *MissionService) List(ctx context.Context, userID uint) ([]model.Mission, error) {
	return s.missions.List(ctx, userID)
}

func (s *MissionService) Create(ctx context.Context, userID uint, in MissionInput) (*model.Mission, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Target <= 0 {
		return nil, fmt.Errorf("%w: target must be positive", ErrInvalidInput)
	}
	mission := &model.Mission{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Target:      in.Target,
		Status:      model.MissionBacklog,
		OnDashboard: in.OnDashboard,
	}
	if err := s.missions.Create(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *MissionService) Update(ctx context.Context, userID uint, missionID string, upd MissionUpdate) (*model.Mission, error) {
	mission, err := s.missions.FindByID(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		mission.Title = *upd.Title
	}
	if upd.Description != nil {
		mission.Description = *upd.Description
	}
	if upd.OnDashboard != nil {
		mission.OnDashboard = *upd.OnDashboard
	}
	if err := s.missions.Save(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *MissionService) Delete(ctx context.Context, userID uint, missionID string) error {
	return s.missions.Delete(ctx, userID, missionID)
}

// UpdateProgress sets a mission's progress, derives its status, appends a
// history snapshot, and — when the completion state flips in either
// direction — applies the mission reward in the same transaction as the
// mission write, so a completed mission can never commit without its reward.
func (s *MissionService) UpdateProgress(ctx context.Context, userID uint, missionID string, progress int) (*MissionResult, error) {
	if progress < 0 {
		return nil, fmt.Errorf("%w: progress must be non-negative", ErrInvalidInput)
	}

	mission, err := s.missions.FindByID(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}

	wasCompleted := mission.Progress >= mission.Target
	isCompleted := progress >= mission.Target

	var outcome *RewardOutcome
	err = s.db.Transaction(func(tx *gorm.DB) error {
		missions := s.missions.WithTx(tx)
		users := s.users.WithTx(tx)

		mission.Progress = progress
		mission.Status = model.StatusForProgress(progress, mission.Target)
		mission.History = append(mission.History, model.ProgressPoint{
			Date:     s.now(),
			Progress: progress,
		})
		if err := missions.Save(ctx, mission); err != nil {
			return err
		}

		if wasCompleted == isCompleted {
			return nil
		}
		out, err := applyReward(ctx, users, userID, gamification.MissionReward(wasCompleted, isCompleted))
		if err != nil {
			return err
		}
		outcome = &out
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome != nil {
		s.notifier.RewardGranted(userID, *outcome)
	}
	return &MissionResult{Mission: mission, Rewards: outcome}, nil
}

// Archive forces a mission to completed and grants the completion reward
// once. Archiving requires the target to be reached; re-archiving an
// already-completed mission is a no-op reward-wise.
func (s *MissionService) Archive(ctx context.Context, userID uint, missionID string) (*MissionResult, error) {
	mission, err := s.missions.FindByID(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}
	if mission.Progress < mission.Target {
		return nil, fmt.Errorf("%w: mission target not reached", ErrInvalidInput)
	}

	wasCompleted := mission.Status == model.MissionCompleted

	var outcome *RewardOutcome
	err = s.db.Transaction(func(tx *gorm.DB) error {
		missions := s.missions.WithTx(tx)
		users := s.users.WithTx(tx)

		mission.Status = model.MissionCompleted
		if err := missions.Save(ctx, mission); err != nil {
			return err
		}

		if wasCompleted {
			return nil
		}
		out, err := applyReward(ctx, users, userID, gamification.MissionReward(false, true))
		if err != nil {
			return err
		}
		outcome = &out
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome != nil {
		s.notifier.RewardGranted(userID, *outcome)
	}
	return &MissionResult{Mission: mission, Rewards: outcome}, nil
}
