package service

import "github.com/questlog/backend/internal/model"

// Notifier receives reward events for delivery to the acting user's
// connected clients. Implementations must not block.
type Notifier interface {
	RewardGranted(userID uint, outcome RewardOutcome)
	AchievementUnlocked(userID uint, achievement model.Achievement)
}

type nopNotifier struct{}

func (nopNotifier) RewardGranted(uint, RewardOutcome)           {}
func (nopNotifier) AchievementUnlocked(uint, model.Achievement) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
