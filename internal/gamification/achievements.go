package gamification

import "time"

// Tier represents an achievement's difficulty level.
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Category groups related achievements in the UI.
type Category string

const (
	CategoryBasic   Category = "basic"
	CategoryTime    Category = "time"
	CategoryHumor   Category = "humor"
	CategoryComplex Category = "complex"
)

// TaskFact is the slice of task state the progress rules read. CompletedAt
// is the last completion toggle; it is the zero value for open tasks.
type TaskFact struct {
	CreatedAt   time.Time
	CompletedAt time.Time
	Due         time.Time // zero when the task has no due date
	Completed   bool
	Reschedules int
}

// Snapshot is a user's authoritative state at evaluation time. Progress
// rules are pure functions over it.
type Snapshot struct {
	Now   time.Time
	XP    int
	Tasks []TaskFact
}

// Definition describes one entry of the achievement catalog. Progress
// computes raw progress toward Target from a snapshot; an instance unlocks
// when progress reaches Target, and the unlock is permanent even if a later
// evaluation yields less progress.
type Definition struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Tier        Tier
	XPReward    int
	Target      int
	Progress    func(*Snapshot) int
}

// Catalog returns the fixed achievement catalog. Callers must not mutate
// the shared Progress functions; the slice itself is a fresh copy.
func Catalog() []Definition {
	return []Definition{

		// ── Basic ──────────────────────────────────────────────────────────

		{
			ID: "getting_started", Name: "Getting Started",
			Description: "Create your first task",
			Category:    CategoryBasic, Tier: TierBronze,
			XPReward: 10, Target: 1,
			Progress: func(s *Snapshot) int {
				if len(s.Tasks) > 0 {
					return 1
				}
				return 0
			},
		},
		{
			ID: "first_blood", Name: "First Blood",
			Description: "Complete a task",
			Category:    CategoryBasic, Tier: TierBronze,
			XPReward: 15, Target: 1,
			Progress: func(s *Snapshot) int {
				for _, t := range s.Tasks {
					if t.Completed {
						return 1
					}
				}
				return 0
			},
		},
		{
			ID: "marathoner", Name: "Marathoner",
			Description: "Complete 10 tasks in one day",
			Category:    CategoryBasic, Tier: TierSilver,
			XPReward: 30, Target: 10,
			Progress: func(s *Snapshot) int {
				n := 0
				for _, t := range s.Tasks {
					if t.Completed && sameDay(t.CompletedAt, s.Now) {
						n++
					}
				}
				return n
			},
		},
		{
			ID: "steady_flow", Name: "Steady Flow",
			Description: "Complete tasks 7 days in a row",
			Category:    CategoryBasic, Tier: TierSilver,
			XPReward: 50, Target: 7,
			Progress: completionStreak,
		},
		{
			ID: "sprinter", Name: "Sprinter",
			Description: "Complete a task within 10 minutes of creating it",
			Category:    CategoryBasic, Tier: TierBronze,
			XPReward: 20, Target: 1,
			Progress: func(s *Snapshot) int {
				n := 0
				for _, t := range s.Tasks {
					if t.Completed && t.CompletedAt.Sub(t.CreatedAt) <= 10*time.Minute {
						n++
					}
				}
				return n
			},
		},

		// ── Time of day ────────────────────────────────────────────────────

		{
			ID: "early_bird", Name: "Early Bird",
			Description: "Complete 3 tasks before 08:00",
			Category:    CategoryTime, Tier: TierSilver,
			XPReward: 25, Target: 3,
			Progress: func(s *Snapshot) int {
				n := 0
				for _, t := range s.Tasks {
					if t.Completed && t.CompletedAt.Hour() < 8 {
						n++
					}
				}
				return n
			},
		},
		{
			ID: "night_owl", Name: "Night Owl",
			Description: "Complete a task after 23:00",
			Category:    CategoryTime, Tier: TierBronze,
			XPReward: 20, Target: 1,
			Progress: func(s *Snapshot) int {
				n := 0
				for _, t := range s.Tasks {
					if t.Completed && t.CompletedAt.Hour() >= 23 {
						n++
					}
				}
				return n
			},
		},
		{
			ID: "weekend_warrior", Name: "Weekend Warrior",
			Description: "Complete a task on a weekend",
			Category:    CategoryTime, Tier: TierBronze,
			XPReward: 30, Target: 1,
			Progress: func(s *Snapshot) int {
				n := 0
				for _, t := range s.Tasks {
					if t.Completed && sameDay(t.CompletedAt, s.Now) && isWeekend(t.CompletedAt) {
						n++
					}
				}
				return n
			},
		},

		// ── Humor ──────────────────────────────────────────────────────────

		{
			ID: "master_procrastinator", Name: "Master of Procrastination",
			Description: "Reschedule one task 5 times",
			Category:    CategoryHumor, Tier: TierBronze,
			XPReward: 25, Target: 5,
			Progress: func(s *Snapshot) int {
				best := 0
				for _, t := range s.Tasks {
					if t.Reschedules > best {
						best = t.Reschedules
					}
				}
				return best
			},
		},

		// ── Complex ────────────────────────────────────────────────────────

		{
			ID: "iron_will", Name: "Iron Will",
			Description: "Complete tasks 30 days in a row",
			Category:    CategoryComplex, Tier: TierGold,
			XPReward: 100, Target: 30,
			Progress: completionStreak,
		},
		{
			ID: "multitasker", Name: "Multitasker",
			Description: "Have 5 active tasks due today",
			Category:    CategoryComplex, Tier: TierSilver,
			XPReward: 60, Target: 5,
			Progress: func(s *Snapshot) int {
				n := 0
				for _, t := range s.Tasks {
					if !t.Completed && !t.Due.IsZero() && sameDay(t.Due, s.Now) {
						n++
					}
				}
				return n
			},
		},
		{
			ID: "legend", Name: "Legend",
			Description: "Earn 10,000 XP",
			Category:    CategoryComplex, Tier: TierGold,
			XPReward: 150, Target: 10000,
			Progress: func(s *Snapshot) int { return s.XP },
		},
	}
}

// DefinitionByID looks up a catalog entry by its stable identifier.
func DefinitionByID(id string) (Definition, bool) {
	for _, d := range Catalog() {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// completionStreak counts consecutive calendar days, ending today, with at
// least one task completion. It reuses the habit streak walk over the set of
// completion days.
func completionStreak(s *Snapshot) int {
	days := make([]string, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.Completed {
			days = append(days, Day(t.CompletedAt))
		}
	}
	return ComputeStreak(days, s.Now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
