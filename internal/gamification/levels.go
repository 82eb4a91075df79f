package gamification

import "math"

// Level progression follows a geometric schedule: advancing from level L to
// L+1 costs floor(100 * 1.5^(L-1)) XP. Thresholds are cumulative — a user's
// level is the largest L whose cumulative cost fits inside their XP total.
// There is no maximum level.
const (
	levelBaseXP     = 100
	levelMultiplier = 1.5
)

// LevelProgress describes a user's position within their current level.
type LevelProgress struct {
	CurrentLevel    int `json:"currentLevel"`
	ProgressInLevel int `json:"progressInLevel"`
	RequiredForNext int `json:"requiredForNext"`
}

// RequiredXP returns the XP needed to advance from the given level to the
// next one. Levels below 1 are treated as level 1.
func RequiredXP(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(levelBaseXP * math.Pow(levelMultiplier, float64(level-1))))
}

// CumulativeXP returns the total XP required to reach the given level from
// zero. Level 1 costs nothing.
func CumulativeXP(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += RequiredXP(l)
	}
	return total
}

// LevelForXP maps a non-negative XP total to a level. Negative input is
// clamped to zero, so the result is always >= 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := 1
	remaining := xp
	for remaining >= RequiredXP(level) {
		remaining -= RequiredXP(level)
		level++
	}
	return level
}

// ProgressToNextLevel reports the user's current level, how far into it the
// XP total reaches, and the cost of the next advancement. ProgressInLevel is
// always strictly below RequiredForNext: reaching the boundary advances the
// level instead.
func ProgressToNextLevel(xp int) LevelProgress {
	if xp < 0 {
		xp = 0
	}
	level := 1
	remaining := xp
	for remaining >= RequiredXP(level) {
		remaining -= RequiredXP(level)
		level++
	}
	return LevelProgress{
		CurrentLevel:    level,
		ProgressInLevel: remaining,
		RequiredForNext: RequiredXP(level),
	}
}
