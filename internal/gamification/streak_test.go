package gamification

import (
	"testing"
	"time"
)

var streakToday = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func day(offset int) string {
	return streakToday.AddDate(0, 0, offset).Format(DayFormat)
}

func TestComputeStreak(t *testing.T) {
	cases := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"only today", []string{day(0)}, 1},
		{"three consecutive days", []string{day(0), day(-1), day(-2)}, 3},
		{"gap stops the walk", []string{day(0), day(-1), day(-2), day(-4)}, 3},
		{"today missing", []string{day(-1), day(-2), day(-3)}, 0},
		{"unordered input", []string{day(-2), day(0), day(-1)}, 3},
		{"duplicates collapse", []string{day(0), day(0), day(-1)}, 2},
		{"future dates ignored by the walk", []string{day(0), day(1)}, 1},
		{"garbage entries skipped", []string{day(0), "not-a-date", day(-1)}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ComputeStreak(c.dates, streakToday); got != c.want {
				t.Errorf("ComputeStreak(%v) = %d, want %d", c.dates, got, c.want)
			}
		})
	}
}

func TestComputeStreak_CrossesMonthBoundary(t *testing.T) {
	today := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	dates := []string{"2025-03-01", "2025-02-28", "2025-02-27"}
	if got := ComputeStreak(dates, today); got != 3 {
		t.Errorf("ComputeStreak across month boundary = %d, want 3", got)
	}
}

func TestDay(t *testing.T) {
	if got := Day(streakToday); got != "2025-03-15" {
		t.Errorf("Day() = %q, want 2025-03-15", got)
	}
}
