package repository

import (
	"context"
	"time"

	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
)

// DiaryFilter narrows a List call. Zero values mean "no filter": empty
// Search, empty or "All" Category, Page 0 (first page), PageSize 0 (no
// pagination). Validation of ranges happens in the application layer
// before the repository is reached.
type DiaryFilter struct {
	Search   string
	Category entity.Category
	Page     int
	PageSize int
}

// StreakFunc computes the next streak value from the owner's current
// streak state. It must be pure; the repository calls it inside the
// entry-creation transaction while holding the user row. advance reports
// whether streak and last_log_date should be written back (false for a
// second entry on the same calendar day).
type StreakFunc func(streak int, lastLog *time.Time, now time.Time) (newStreak int, advance bool)

// DiaryRepository defines the interface for diary entry database
// operations. Every read and write is scoped by owner id; a mutation
// that matches no rows is not an error (the caller never learns whether
// a foreign entry exists).
type DiaryRepository interface {
	// CreateWithStreak inserts the entry and applies the streak
	// transition to the owner row in a single transaction. The user row
	// is locked for the duration so concurrent creates cannot lose an
	// update. Returns the streak value after the transition.
	CreateWithStreak(ctx context.Context, d *entity.Diary, now time.Time, next StreakFunc) (int, error)

	// List returns one page of the owner's entries, newest first, plus
	// the total number of entries matching the filter before pagination.
	List(ctx context.Context, ownerID string, f DiaryFilter) ([]*entity.Diary, int, error)

	// ListRange returns the owner's entries with created_at within
	// [from, to], in ascending creation order.
	ListRange(ctx context.Context, ownerID string, from, to time.Time) ([]*entity.Diary, error)

	GetByID(ctx context.Context, ownerID, id string) (*entity.Diary, error)
	Update(ctx context.Context, d *entity.Diary) error
	Delete(ctx context.Context, ownerID, id string) error
}
