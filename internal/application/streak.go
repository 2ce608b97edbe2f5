package application

import (
	"time"
)

// NextStreak computes the streak transition for a new diary entry.
//
//	no previous log          -> 1
//	same calendar day        -> unchanged
//	exactly the next day     -> streak + 1
//	gap of one or more days  -> 1
//
// advance is false only for a same-day re-entry, in which case neither
// streak nor last_log_date should be persisted.
func NextStreak(streak int, lastLog *time.Time, now time.Time) (int, bool) {
	if lastLog == nil {
		return 1, true
	}
	switch diff := calendarDayDiff(now, *lastLog); {
	case diff == 0:
		return streak, false
	case diff == 1:
		return streak + 1, true
	default:
		return 1, true
	}
}

// calendarDayDiff returns the number of calendar days between two
// instants. Dates are compared in UTC, not as elapsed 24h periods: two
// logs 20 hours apart that straddle a UTC midnight are one day apart.
// All day-boundary math in the service goes through here so the
// timezone convention stays in one place.
func calendarDayDiff(a, b time.Time) int {
	da := dateOnly(a.UTC())
	db := dateOnly(b.UTC())
	return int(da.Sub(db).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
