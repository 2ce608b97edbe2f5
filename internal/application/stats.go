package application

import (
	"time"

	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
)

// TopCategoryNone is reported when a month has no entries.
const TopCategoryNone = "None"

// DayCount is one bar of the monthly chart.
type DayCount struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

// CategoryCount is one slice of the category breakdown.
type CategoryCount struct {
	Category entity.Category `json:"category"`
	Count    int             `json:"count"`
}

// MonthlyStats aggregates one month of entries for the dashboard.
type MonthlyStats struct {
	TotalEntries      int             `json:"total_entries"`
	EntriesByDay      []DayCount      `json:"entries_by_day"`
	CategoryBreakdown []CategoryCount `json:"category_breakdown"`
	TopCategory       string          `json:"top_category"`
}

// ComputeMonthlyStats aggregates entries whose CreatedAt falls within
// [monthStart, monthEnd]. EntriesByDay is dense: every calendar day of
// the month appears, zero counts included, ascending. TopCategory ties
// are broken by the first category encountered in input order.
func ComputeMonthlyStats(entries []*entity.Diary, monthStart, monthEnd time.Time) MonthlyStats {
	days := daysInMonth(monthStart)
	byDay := make([]DayCount, days)
	for i := range byDay {
		byDay[i] = DayCount{Day: i + 1}
	}

	var order []entity.Category
	counts := make(map[entity.Category]int)
	for _, e := range entries {
		created := e.CreatedAt.UTC()
		if created.Before(monthStart) || created.After(monthEnd) {
			continue
		}
		if day := created.Day(); day >= 1 && day <= days {
			byDay[day-1].Count++
		}
		if _, seen := counts[e.Category]; !seen {
			order = append(order, e.Category)
		}
		counts[e.Category]++
	}

	stats := MonthlyStats{
		EntriesByDay: byDay,
		TopCategory:  TopCategoryNone,
	}
	top := 0
	for _, c := range order {
		stats.TotalEntries += counts[c]
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, CategoryCount{Category: c, Count: counts[c]})
		if counts[c] > top {
			top = counts[c]
			stats.TopCategory = string(c)
		}
	}
	return stats
}

// MonthBounds returns the inclusive [start, end] instants of the month
// containing t, in UTC.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

func daysInMonth(monthStart time.Time) int {
	monthStart = monthStart.UTC()
	return time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
