package gamification

// XP and gold amounts for the reward schedule.
const (
	XPPerTask      = 1
	XPDailyBonus   = 3
	GoldDailyBonus = 1

	XPMissionComplete   = 30
	GoldMissionComplete = 2
)

// Reward is an XP/gold delta produced by a single state transition. Deltas
// may be negative; callers clamp the resulting totals at zero via Apply.
type Reward struct {
	XPChange   int `json:"xpChange"`
	GoldChange int `json:"goldChange"`
}

// IsZero reports whether the reward changes nothing.
func (r Reward) IsZero() bool {
	return r.XPChange == 0 && r.GoldChange == 0
}

// Add returns the component-wise sum of two rewards.
func (r Reward) Add(other Reward) Reward {
	return Reward{
		XPChange:   r.XPChange + other.XPChange,
		GoldChange: r.GoldChange + other.GoldChange,
	}
}

// Apply returns the user's new XP and gold totals after this reward.
// Neither total ever drops below zero.
func (r Reward) Apply(xp, gold int) (int, int) {
	newXP := xp + r.XPChange
	if newXP < 0 {
		newXP = 0
	}
	newGold := gold + r.GoldChange
	if newGold < 0 {
		newGold = 0
	}
	return newXP, newGold
}

// TaskTransition describes a completion toggle and the context the daily
// bonus rule needs.
type TaskTransition struct {
	WasCompleted bool
	IsCompleted  bool
	// AllDueTodayDone is true when, after this toggle, every one of the
	// user's tasks due today is completed (and at least one such task exists).
	AllDueTodayDone bool
	// BonusAlreadyGranted is true when a daily bonus has already been
	// recorded for this user and calendar day.
	BonusAlreadyGranted bool
}

// TaskReward computes the XP/gold delta for a task completion toggle.
// Completing a task grants XPPerTask; if it was the last task due today and
// no bonus has been granted yet, the daily bonus is added on top.
// Un-completing takes back XPPerTask but never revokes a daily bonus.
func TaskReward(t TaskTransition) Reward {
	switch {
	case !t.WasCompleted && t.IsCompleted:
		r := Reward{XPChange: XPPerTask}
		if t.AllDueTodayDone && !t.BonusAlreadyGranted {
			r.XPChange += XPDailyBonus
			r.GoldChange += GoldDailyBonus
		}
		return r
	case t.WasCompleted && !t.IsCompleted:
		return Reward{XPChange: -XPPerTask}
	default:
		return Reward{}
	}
}

// MissionReward computes the XP/gold delta when a mission's completion state
// flips. Crossing into completion grants the mission reward; regressing out
// of it takes the same amounts back. No flip, no reward.
func MissionReward(wasCompleted, isCompleted bool) Reward {
	switch {
	case !wasCompleted && isCompleted:
		return Reward{XPChange: XPMissionComplete, GoldChange: GoldMissionComplete}
	case wasCompleted && !isCompleted:
		return Reward{XPChange: -XPMissionComplete, GoldChange: -GoldMissionComplete}
	default:
		return Reward{}
	}
}

// AchievementReward computes the delta for a newly unlocked achievement.
// Achievements grant XP only.
func AchievementReward(xpReward int) Reward {
	return Reward{XPChange: xpReward}
}
