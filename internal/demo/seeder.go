// Package demo populates a fresh database with a ready-to-explore account
// so the UI has something to show without manual setup.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/questlog/backend/internal/auth"
	"github.com/questlog/backend/internal/gamification"
	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
	"github.com/questlog/backend/internal/service"
)

const (
	Username = "demo"
	Password = "demo1234"
)

type Seeder struct {
	users        *repository.UserRepository
	tasks        *repository.TaskRepository
	habits       *repository.HabitRepository
	missions     *repository.MissionRepository
	achievements *service.AchievementService
}

func NewSeeder(
	users *repository.UserRepository,
	tasks *repository.TaskRepository,
	habits *repository.HabitRepository,
	missions *repository.MissionRepository,
	achievements *service.AchievementService,
) *Seeder {
	return &Seeder{
		users:        users,
		tasks:        tasks,
		habits:       habits,
		missions:     missions,
		achievements: achievements,
	}
}

// Seed creates the demo account with sample data. Running against a database
// that already has the account is a no-op.
func (s *Seeder) Seed(ctx context.Context) error {
	if _, err := s.users.FindByUsername(ctx, Username); err == nil {
		log.Printf("demo user %q already exists, skipping seed", Username)
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(Password)
	if err != nil {
		return err
	}
	user := &model.User{Username: Username, PasswordHash: hash, Level: 1}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	now := time.Now()
	today := now
	tomorrow := now.AddDate(0, 0, 1)

	tasks := []*model.Task{
		{UserID: user.ID, Title: "Reply to the plumber", Due: &today},
		{UserID: user.ID, Title: "Book dentist appointment", Due: &tomorrow},
		{UserID: user.ID, Title: "Clear the inbox"},
		{UserID: user.ID, Title: "Water the plants", Completed: true},
	}
	for _, task := range tasks {
		if err := s.tasks.Create(ctx, task); err != nil {
			return err
		}
	}

	day := gamification.Day(now)
	yesterday := gamification.Day(now.AddDate(0, 0, -1))
	habits := []*model.Habit{
		{
			ID: uuid.NewString(), UserID: user.ID, Name: "Morning run",
			CompletedDates: model.DateList{yesterday, day},
			Streak:         2,
		},
		{
			ID: uuid.NewString(), UserID: user.ID, Name: "Read 20 pages",
			CompletedDates: model.DateList{yesterday},
		},
	}
	for _, habit := range habits {
		if err := s.habits.Create(ctx, habit); err != nil {
			return err
		}
	}

	missions := []*model.Mission{
		{
			ID: uuid.NewString(), UserID: user.ID,
			Title: "Read 10 books this year", Target: 10, Progress: 3,
			Status:      model.MissionInProgress,
			OnDashboard: true,
			History: model.ProgressHistory{
				{Date: now.AddDate(0, -1, 0), Progress: 1},
				{Date: now.AddDate(0, 0, -10), Progress: 3},
			},
		},
		{
			ID: uuid.NewString(), UserID: user.ID,
			Title: "Run a half marathon", Description: "Train three times a week",
			Target: 21, Status: model.MissionBacklog,
		},
	}
	for _, mission := range missions {
		if err := s.missions.Create(ctx, mission); err != nil {
			return err
		}
	}

	if _, err := s.achievements.Seed(ctx, user.ID); err != nil {
		return err
	}
	if _, err := s.achievements.Check(ctx, user.ID); err != nil {
		return fmt.Errorf("evaluate demo achievements: %w", err)
	}

	log.Printf("seeded demo account %q (password %q)", Username, Password)
	return nil
}
