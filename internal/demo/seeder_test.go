package demo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/questlog/backend/internal/auth"
	"github.com/questlog/backend/internal/repository"
	"github.com/questlog/backend/internal/service"
)

func newSeeder(t *testing.T) (*Seeder, *repository.UserRepository, *repository.TaskRepository) {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	achievements := service.NewAchievementService(db, repository.NewAchievementRepository(db), tasks, users, nil)

	seeder := NewSeeder(users, tasks, repository.NewHabitRepository(db), repository.NewMissionRepository(db), achievements)
	return seeder, users, tasks
}

func TestSeed_CreatesWorkingAccount(t *testing.T) {
	seeder, users, tasks := newSeeder(t)
	ctx := context.Background()

	if err := seeder.Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	user, err := users.FindByUsername(ctx, Username)
	if err != nil {
		t.Fatalf("demo user missing: %v", err)
	}
	if err := auth.CheckPassword(user.PasswordHash, Password); err != nil {
		t.Error("demo password does not match stored hash")
	}

	list, err := tasks.List(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) == 0 {
		t.Error("no demo tasks seeded")
	}
}

func TestSeed_Idempotent(t *testing.T) {
	seeder, users, tasks := newSeeder(t)
	ctx := context.Background()

	if err := seeder.Seed(ctx); err != nil {
		t.Fatal(err)
	}
	user, err := users.FindByUsername(ctx, Username)
	if err != nil {
		t.Fatal(err)
	}
	before, err := tasks.List(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}

	if err := seeder.Seed(ctx); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	after, err := tasks.List(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Errorf("task count changed from %d to %d on re-seed", len(before), len(after))
	}
}
