package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
)

var taskTestNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func newTaskService(t *testing.T, db *gorm.DB, notifier Notifier) *TaskService {
	t.Helper()
	svc := NewTaskService(
		db,
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
		repository.NewDailyBonusRepository(db),
		notifier,
	)
	svc.now = fixedClock(taskTestNow)
	return svc
}

func TestTaskCreate_RequiresTitle(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "alice")
	svc := newTaskService(t, db, nil)

	_, err := svc.Create(context.Background(), user.ID, TaskInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestComplete_AwardsAndRevokesXP(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newTaskService(t, db, nil)

	task, err := svc.Create(ctx, user.ID, TaskInput{Title: "write report"})
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.Complete(ctx, user.ID, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Task.Completed {
		t.Error("task should be completed after toggle")
	}
	if result.Rewards.XPChange != 1 {
		t.Errorf("XPChange = %d, want 1", result.Rewards.XPChange)
	}
	if got := loadUser(t, db, user.ID); got.XP != 1 {
		t.Errorf("user XP = %d, want 1", got.XP)
	}

	result, err = svc.Complete(ctx, user.ID, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Task.Completed {
		t.Error("task should be incomplete after second toggle")
	}
	if result.Rewards.XPChange != -1 {
		t.Errorf("XPChange = %d, want -1", result.Rewards.XPChange)
	}
	if got := loadUser(t, db, user.ID); got.XP != 0 {
		t.Errorf("user XP = %d, want 0", got.XP)
	}
}

func TestComplete_XPClampsAtZero(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newTaskService(t, db, nil)

	// Completed task but the user never earned the XP for it.
	task := &model.Task{UserID: user.ID, Title: "old", Completed: true}
	if err := db.Create(task).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Complete(ctx, user.ID, task.ID); err != nil {
		t.Fatal(err)
	}
	if got := loadUser(t, db, user.ID); got.XP != 0 {
		t.Errorf("user XP = %d, want 0 (clamped)", got.XP)
	}
}

func TestComplete_DailyBonusWhenAllDueTodayDone(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newTaskService(t, db, nil)

	due := taskTestNow
	first, err := svc.Create(ctx, user.ID, TaskInput{Title: "one", Due: &due})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Create(ctx, user.ID, TaskInput{Title: "two", Due: &due})
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.Complete(ctx, user.ID, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Rewards.XPChange != 1 || result.Rewards.GoldChange != 0 {
		t.Errorf("first toggle rewards = %+v, want XP 1 gold 0 (a due task remains)", result.Rewards)
	}

	result, err = svc.Complete(ctx, user.ID, second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Rewards.XPChange != 4 || result.Rewards.GoldChange != 1 {
		t.Errorf("second toggle rewards = %+v, want XP 4 gold 1 (task + bonus)", result.Rewards)
	}

	got := loadUser(t, db, user.ID)
	if got.XP != 5 || got.Gold != 1 {
		t.Errorf("user totals XP %d gold %d, want 5 and 1", got.XP, got.Gold)
	}
}

func TestComplete_DailyBonusGrantedOncePerDay(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newTaskService(t, db, nil)

	due := taskTestNow
	task, err := svc.Create(ctx, user.ID, TaskInput{Title: "one", Due: &due})
	if err != nil {
		t.Fatal(err)
	}

	// Complete (earns the bonus), un-complete, complete again.
	if _, err := svc.Complete(ctx, user.ID, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Complete(ctx, user.ID, task.ID); err != nil {
		t.Fatal(err)
	}
	result, err := svc.Complete(ctx, user.ID, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Rewards.XPChange != 1 || result.Rewards.GoldChange != 0 {
		t.Errorf("re-completion rewards = %+v, want XP 1 gold 0 (bonus already granted)", result.Rewards)
	}

	got := loadUser(t, db, user.ID)
	if got.XP != 4 || got.Gold != 1 {
		t.Errorf("user totals XP %d gold %d, want 4 and 1", got.XP, got.Gold)
	}
}

func TestComplete_LevelUpCrossesThreshold(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	if err := db.Model(&model.User{}).Where("id = ?", user.ID).Update("xp", 99).Error; err != nil {
		t.Fatal(err)
	}
	svc := newTaskService(t, db, nil)

	task, err := svc.Create(ctx, user.ID, TaskInput{Title: "the last push"})
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.Complete(ctx, user.ID, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Rewards.NewLevel == nil || *result.Rewards.NewLevel != 2 {
		t.Fatalf("NewLevel = %v, want 2", result.Rewards.NewLevel)
	}

	got := loadUser(t, db, user.ID)
	if got.XP != 100 || got.Level != 2 {
		t.Errorf("user XP %d level %d, want 100 and 2", got.XP, got.Level)
	}
}

func TestComplete_NotifiesReward(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	notifier := &recordingNotifier{}
	svc := newTaskService(t, db, notifier)

	task, err := svc.Create(ctx, user.ID, TaskInput{Title: "ping"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Complete(ctx, user.ID, task.ID); err != nil {
		t.Fatal(err)
	}

	if notifier.rewardCount() != 1 {
		t.Errorf("reward notifications = %d, want 1", notifier.rewardCount())
	}
}

func TestTaskUpdate_CountsReschedules(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newTaskService(t, db, nil)

	d1 := taskTestNow
	d2 := taskTestNow.AddDate(0, 0, 3)
	task, err := svc.Create(ctx, user.ID, TaskInput{Title: "slippery", Due: &d1})
	if err != nil {
		t.Fatal(err)
	}

	task, err = svc.Update(ctx, user.ID, task.ID, TaskUpdate{Due: &d2})
	if err != nil {
		t.Fatal(err)
	}
	if task.Reschedules != 1 {
		t.Errorf("Reschedules = %d, want 1 after due change", task.Reschedules)
	}

	// Same date again is not a reschedule.
	task, err = svc.Update(ctx, user.ID, task.ID, TaskUpdate{Due: &d2})
	if err != nil {
		t.Fatal(err)
	}
	if task.Reschedules != 1 {
		t.Errorf("Reschedules = %d, want 1 after no-op due update", task.Reschedules)
	}

	task, err = svc.Update(ctx, user.ID, task.ID, TaskUpdate{ClearDue: true})
	if err != nil {
		t.Fatal(err)
	}
	if task.Due != nil {
		t.Error("Due should be nil after ClearDue")
	}
	if task.Reschedules != 1 {
		t.Errorf("Reschedules = %d, want 1 after clearing due", task.Reschedules)
	}
}

func TestArchiveCompleted_OnlyPreviousDays(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newTaskService(t, db, nil)

	old := &model.Task{UserID: user.ID, Title: "done yesterday", Completed: true}
	today := &model.Task{UserID: user.ID, Title: "done today", Completed: true}
	open := &model.Task{UserID: user.ID, Title: "still open"}
	for _, task := range []*model.Task{old, today, open} {
		if err := db.Create(task).Error; err != nil {
			t.Fatal(err)
		}
	}
	yesterday := taskTestNow.AddDate(0, 0, -1)
	if err := db.Model(&model.Task{}).Where("id = ?", old.ID).UpdateColumn("updated_at", yesterday).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&model.Task{}).Where("id IN ?", []uint{today.ID, open.ID}).UpdateColumn("updated_at", taskTestNow).Error; err != nil {
		t.Fatal(err)
	}

	n, err := svc.ArchiveCompleted(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("archived %d tasks, want 1", n)
	}

	archived, err := svc.ListArchived(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(archived) != 1 || archived[0].ID != old.ID {
		t.Errorf("archived list = %+v, want only the yesterday task", archived)
	}

	active, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Errorf("active list has %d tasks, want 2", len(active))
	}
}
