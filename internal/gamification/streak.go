package gamification

import "time"

// DayFormat is the calendar-day identifier used for habit completion dates
// and the daily bonus ledger.
const DayFormat = "2006-01-02"

// Day formats a timestamp as a calendar-day identifier in its own location.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// ComputeStreak counts the consecutive calendar days, ending today, on which
// the habit was completed. A streak requires today itself to be present:
// if it is not, the streak is 0. Input order does not matter and unparseable
// entries are ignored.
func ComputeStreak(completedDates []string, today time.Time) int {
	if len(completedDates) == 0 {
		return 0
	}

	present := make(map[string]bool, len(completedDates))
	for _, d := range completedDates {
		if _, err := time.Parse(DayFormat, d); err != nil {
			continue
		}
		present[d] = true
	}

	// Walk backward one calendar day at a time from today until the first gap.
	cursor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	streak := 0
	for present[cursor.Format(DayFormat)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
