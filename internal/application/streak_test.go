package application

import (
	"testing"
	"time"
)

func tp(t time.Time) *time.Time { return &t }

func TestNextStreak(t *testing.T) {
	base := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		streak      int
		lastLog     *time.Time
		now         time.Time
		wantStreak  int
		wantAdvance bool
	}{
		{
			name:        "first entry ever",
			streak:      0,
			lastLog:     nil,
			now:         base,
			wantStreak:  1,
			wantAdvance: true,
		},
		{
			name:        "second entry same day",
			streak:      4,
			lastLog:     tp(base.Add(-2 * time.Hour)),
			now:         base,
			wantStreak:  4,
			wantAdvance: false,
		},
		{
			name:        "consecutive day",
			streak:      4,
			lastLog:     tp(base.AddDate(0, 0, -1)),
			now:         base,
			wantStreak:  5,
			wantAdvance: true,
		},
		{
			name:        "two day gap resets",
			streak:      9,
			lastLog:     tp(base.AddDate(0, 0, -2)),
			now:         base,
			wantStreak:  1,
			wantAdvance: true,
		},
		{
			name:        "long gap resets",
			streak:      30,
			lastLog:     tp(base.AddDate(0, -1, 0)),
			now:         base,
			wantStreak:  1,
			wantAdvance: true,
		},
		{
			name:    "twenty hours crossing midnight counts as next day",
			streak:  2,
			lastLog: tp(time.Date(2026, 3, 9, 22, 0, 0, 0, time.UTC)),
			now:     time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC),

			wantStreak:  3,
			wantAdvance: true,
		},
		{
			name:        "same calendar day across many hours",
			streak:      7,
			lastLog:     tp(time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)),
			now:         time.Date(2026, 3, 10, 23, 55, 0, 0, time.UTC),
			wantStreak:  7,
			wantAdvance: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, advance := NextStreak(tt.streak, tt.lastLog, tt.now)
			if got != tt.wantStreak {
				t.Errorf("NextStreak() streak = %d, want %d", got, tt.wantStreak)
			}
			if advance != tt.wantAdvance {
				t.Errorf("NextStreak() advance = %v, want %v", advance, tt.wantAdvance)
			}
		})
	}
}

func TestCalendarDayDiffCrossesMonthBoundary(t *testing.T) {
	a := time.Date(2026, 4, 1, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)
	if got := calendarDayDiff(a, b); got != 1 {
		t.Fatalf("calendarDayDiff() = %d, want 1", got)
	}
}
