package entity

import (
	"time"
)

// Category classifies a diary entry.
type Category string

const (
	CategoryFamily    Category = "Family"
	CategoryWork      Category = "Work"
	CategoryReligious Category = "Religious"
	CategoryOther     Category = "Other"

	// CategoryAll is the filter sentinel meaning "no category filter".
	CategoryAll Category = "All"
)

// Categories lists the valid entry categories, in display order.
func Categories() []Category {
	return []Category{CategoryFamily, CategoryWork, CategoryReligious, CategoryOther}
}

// ParseCategory validates a raw category value.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryFamily, CategoryWork, CategoryReligious, CategoryOther:
		return Category(s), true
	}
	return "", false
}

// Diary is one gratitude journal entry. OwnerID is immutable after
// creation; UpdatedAt is refreshed on every edit.
type Diary struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Category    Category
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
