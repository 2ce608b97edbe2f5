package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password.
//
// Streak is the count of consecutive calendar days with at least one diary
// entry; LastLogDate is the last calendar date an entry was logged and is
// only consulted for streak transitions.
type User struct {
	ID          string
	Email       string
	Password    string
	Name        string
	AvatarURL   string
	Streak      int
	LastLogDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
