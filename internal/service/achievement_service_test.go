package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/questlog/backend/internal/gamification"
	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
)

func newAchievementService(t *testing.T, db *gorm.DB, notifier Notifier) *AchievementService {
	t.Helper()
	return NewAchievementService(
		db,
		repository.NewAchievementRepository(db),
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
		notifier,
	)
}

func TestSeed_CreatesCatalogOnce(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newAchievementService(t, db, nil)

	first, err := svc.Seed(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(gamification.Catalog()) {
		t.Fatalf("seeded %d instances, want %d", len(first), len(gamification.Catalog()))
	}

	second, err := svc.Seed(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != len(first) {
		t.Fatalf("re-seed produced %d instances, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatal("re-seed replaced existing instances")
		}
	}
}

func TestList_SeedsWhenEmpty(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newAchievementService(t, db, nil)

	got, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(gamification.Catalog()) {
		t.Fatalf("List seeded %d instances, want %d", len(got), len(gamification.Catalog()))
	}
	for _, inst := range got {
		if inst.Achieved {
			t.Errorf("instance %s seeded as achieved", inst.DefinitionID)
		}
	}
}

func findInstance(t *testing.T, instances []model.Achievement, definitionID string) *model.Achievement {
	t.Helper()
	for i := range instances {
		if instances[i].DefinitionID == definitionID {
			return &instances[i]
		}
	}
	t.Fatalf("no instance for definition %q", definitionID)
	return nil
}

func TestCheck_UnlocksAndRewards(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	notifier := &recordingNotifier{}
	svc := newAchievementService(t, db, notifier)

	if _, err := svc.Seed(ctx, user.ID); err != nil {
		t.Fatal(err)
	}

	// One completed task satisfies the single-completion achievements.
	task := &model.Task{UserID: user.ID, Title: "done", Completed: true}
	if err := db.Create(task).Error; err != nil {
		t.Fatal(err)
	}

	instances, err := svc.Check(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}

	inst := findInstance(t, instances, "getting_started")
	if !inst.Achieved {
		t.Fatal("getting_started should unlock after one completion")
	}
	if inst.AchievedAt == nil {
		t.Error("AchievedAt not stamped on unlock")
	}

	got := loadUser(t, db, user.ID)
	if got.XP < inst.XPReward {
		t.Errorf("user XP = %d, want at least the %d XP reward", got.XP, inst.XPReward)
	}

	notifier.mu.Lock()
	unlocked := len(notifier.achievements)
	notifier.mu.Unlock()
	if unlocked == 0 {
		t.Error("no unlock notifications sent")
	}
}

func TestCheck_UnlockIsTerminal(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newAchievementService(t, db, nil)

	if _, err := svc.Seed(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	task := &model.Task{UserID: user.ID, Title: "done", Completed: true}
	if err := db.Create(task).Error; err != nil {
		t.Fatal(err)
	}

	first, err := svc.Check(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	achievedAt := *findInstance(t, first, "getting_started").AchievedAt
	xpAfterUnlock := loadUser(t, db, user.ID).XP

	// Un-complete the task: progress would drop, but the unlock must hold.
	if err := db.Model(&model.Task{}).Where("id = ?", task.ID).Update("completed", false).Error; err != nil {
		t.Fatal(err)
	}

	second, err := svc.Check(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	inst := findInstance(t, second, "getting_started")
	if !inst.Achieved {
		t.Fatal("achieved state regressed after task un-completion")
	}
	if !inst.AchievedAt.Equal(achievedAt) {
		t.Error("AchievedAt changed on re-check")
	}
	if got := loadUser(t, db, user.ID).XP; got != xpAfterUnlock {
		t.Errorf("user XP = %d, want %d (reward granted once)", got, xpAfterUnlock)
	}
}

func TestCheck_PersistsPartialProgress(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newAchievementService(t, db, nil)

	if _, err := svc.Seed(ctx, user.ID); err != nil {
		t.Fatal(err)
	}

	// Three completed tasks: partial progress toward the ten-task marathoner.
	for i := 0; i < 3; i++ {
		task := &model.Task{UserID: user.ID, Title: "done", Completed: true}
		if err := db.Create(task).Error; err != nil {
			t.Fatal(err)
		}
	}

	instances, err := svc.Check(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	inst := findInstance(t, instances, "marathoner")
	if inst.Achieved {
		t.Fatal("marathoner unlocked early")
	}
	if inst.Progress != 3 {
		t.Errorf("Progress = %d, want 3", inst.Progress)
	}

	// The progress write must survive a reload.
	stored, err := repository.NewAchievementRepository(db).List(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := findInstance(t, stored, "marathoner").Progress; got != 3 {
		t.Errorf("stored Progress = %d, want 3", got)
	}
}

func TestCheck_XPThresholdUsesCurrentTotal(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newAchievementService(t, db, nil)

	if _, err := svc.Seed(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&model.User{}).Where("id = ?", user.ID).Update("xp", 10000).Error; err != nil {
		t.Fatal(err)
	}

	instances, err := svc.Check(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if inst := findInstance(t, instances, "legend"); !inst.Achieved {
		t.Errorf("legend locked at %d/%d with 10000 XP", inst.Progress, inst.Target)
	}
}

// Archived tasks still count toward lifetime achievements.
func TestCheck_CountsArchivedTasks(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := createUser(t, db, "alice")
	svc := newAchievementService(t, db, nil)

	if _, err := svc.Seed(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	archivedAt := taskTestNow.Add(-24 * time.Hour)
	task := &model.Task{UserID: user.ID, Title: "old win", Completed: true, Archived: true, ArchivedAt: &archivedAt}
	if err := db.Create(task).Error; err != nil {
		t.Fatal(err)
	}

	instances, err := svc.Check(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if inst := findInstance(t, instances, "getting_started"); !inst.Achieved {
		t.Error("archived completion ignored by achievement check")
	}
}
