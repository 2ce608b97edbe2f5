package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
	"github.com/mcomanduci/diario-de-gratidao/pkg/helpers"
)

const resetTokenTTL = 30 * time.Minute

func resetTokenKey(token string) string {
	return "pwd:reset:token:" + token
}

func genResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// InitPasswordReset issues a single-use token for the account behind
// email. The token lives in Redis for resetTokenTTL. Returns
// ErrUserNotFound when no such account exists; the handler decides how
// much of that to reveal.
func (s *UserService) InitPasswordReset(ctx context.Context, email string) (string, *entity.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrUserNotFound
	}

	token, err := genResetToken()
	if err != nil {
		return "", nil, err
	}
	if err := s.Redis.Set(ctx, resetTokenKey(token), u.ID, resetTokenTTL).Err(); err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ConfirmPasswordReset swaps the account password for the one-shot
// token. The token is deleted before the password write so a replay
// races against a missing key, not a reusable one.
func (s *UserService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return invalidf("token is required")
	}
	if len(newPassword) < 8 {
		return invalidf("password must be at least 8 characters")
	}

	key := resetTokenKey(token)
	userID, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return invalidf("invalid or expired token")
		}
		return err
	}
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		return err
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	// All live sessions die with the old password.
	s.Logout(ctx, userID)
	return nil
}
