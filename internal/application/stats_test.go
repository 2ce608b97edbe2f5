package application

import (
	"testing"
	"time"

	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
)

func entryOn(day int, cat entity.Category) *entity.Diary {
	return &entity.Diary{
		Category:  cat,
		CreatedAt: time.Date(2026, 4, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestComputeMonthlyStatsEmptyMonth(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC))
	stats := ComputeMonthlyStats(nil, start, end)

	if stats.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d, want 0", stats.TotalEntries)
	}
	if stats.TopCategory != TopCategoryNone {
		t.Errorf("TopCategory = %q, want %q", stats.TopCategory, TopCategoryNone)
	}
	if len(stats.EntriesByDay) != 30 {
		t.Fatalf("EntriesByDay length = %d, want 30", len(stats.EntriesByDay))
	}
	for i, dc := range stats.EntriesByDay {
		if dc.Day != i+1 || dc.Count != 0 {
			t.Errorf("EntriesByDay[%d] = %+v, want {Day:%d Count:0}", i, dc, i+1)
		}
	}
	if len(stats.CategoryBreakdown) != 0 {
		t.Errorf("CategoryBreakdown = %v, want empty", stats.CategoryBreakdown)
	}
}

func TestComputeMonthlyStatsCounts(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	entries := []*entity.Diary{
		entryOn(5, entity.CategoryWork),
		entryOn(5, entity.CategoryWork),
		entryOn(12, entity.CategoryFamily),
	}

	stats := ComputeMonthlyStats(entries, start, end)

	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	if got := stats.EntriesByDay[4].Count; got != 2 {
		t.Errorf("day 5 count = %d, want 2", got)
	}
	if got := stats.EntriesByDay[11].Count; got != 1 {
		t.Errorf("day 12 count = %d, want 1", got)
	}
	if stats.TopCategory != string(entity.CategoryWork) {
		t.Errorf("TopCategory = %q, want %q", stats.TopCategory, entity.CategoryWork)
	}
	if len(stats.CategoryBreakdown) != 2 {
		t.Fatalf("CategoryBreakdown length = %d, want 2", len(stats.CategoryBreakdown))
	}
	if stats.CategoryBreakdown[0].Category != entity.CategoryWork || stats.CategoryBreakdown[0].Count != 2 {
		t.Errorf("CategoryBreakdown[0] = %+v, want Work/2", stats.CategoryBreakdown[0])
	}
}

func TestComputeMonthlyStatsTieBreak(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	entries := []*entity.Diary{
		entryOn(1, entity.CategoryOther),
		entryOn(2, entity.CategoryFamily),
		entryOn(3, entity.CategoryFamily),
		entryOn(4, entity.CategoryOther),
	}

	stats := ComputeMonthlyStats(entries, start, end)

	// Equal counts: the category seen first wins.
	if stats.TopCategory != string(entity.CategoryOther) {
		t.Errorf("TopCategory = %q, want %q", stats.TopCategory, entity.CategoryOther)
	}
}

func TestComputeMonthlyStatsIgnoresOutOfRange(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	entries := []*entity.Diary{
		entryOn(10, entity.CategoryWork),
		{Category: entity.CategoryWork, CreatedAt: time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)},
		{Category: entity.CategoryWork, CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	stats := ComputeMonthlyStats(entries, start, end)
	if stats.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d, want 1", stats.TotalEntries)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC))

	if !start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	wantEnd := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestDaysInMonthLeapYear(t *testing.T) {
	if got := daysInMonth(time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC)); got != 29 {
		t.Errorf("daysInMonth(feb 2028) = %d, want 29", got)
	}
	if got := daysInMonth(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)); got != 28 {
		t.Errorf("daysInMonth(feb 2026) = %d, want 28", got)
	}
}
