package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
)

// testDB opens a throwaway SQLite database with the full schema migrated.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Level: 1}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func loadUser(t *testing.T, db *gorm.DB, id uint) *model.User {
	t.Helper()
	user, err := repository.NewUserRepository(db).FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	return user
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu           sync.Mutex
	rewards      []RewardOutcome
	achievements []model.Achievement
}

func (n *recordingNotifier) RewardGranted(_ uint, outcome RewardOutcome) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rewards = append(n.rewards, outcome)
}

func (n *recordingNotifier) AchievementUnlocked(_ uint, a model.Achievement) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.achievements = append(n.achievements, a)
}

func (n *recordingNotifier) rewardCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.rewards)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
