package repository

import (
	"context"

	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
)

// UserRepository defines the interface for account database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
