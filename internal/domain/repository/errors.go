package repository

import "errors"

// ErrNotFound is returned when a query scoped to the caller matches no
// row. Mutations deliberately do not return it (see DiaryRepository).
var ErrNotFound = errors.New("not found")
