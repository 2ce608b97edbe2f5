package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
	"github.com/mcomanduci/diario-de-gratidao/internal/domain/repository"
)

type DiaryRepository struct {
	pool *pgxpool.Pool
}

func NewDiaryRepository(pool *pgxpool.Pool) *DiaryRepository {
	return &DiaryRepository{pool: pool}
}

const diaryColumns = `id, user_id, title, description, category, image_url, created_at, updated_at`

func scanDiary(row pgx.Row) (*entity.Diary, error) {
	d := &entity.Diary{}
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &d.Description, &d.Category,
		&d.ImageURL, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// CreateWithStreak inserts the entry and applies the owner's streak
// transition in one transaction. The user row is read FOR UPDATE so two
// concurrent creates for the same user serialize instead of losing one
// of the streak writes.
func (r *DiaryRepository) CreateWithStreak(ctx context.Context, d *entity.Diary, now time.Time, next repository.StreakFunc) (int, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var streak int
	var lastLog *time.Time
	err = tx.QueryRow(ctx, `
		SELECT streak, last_log_date
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, d.OwnerID).Scan(&streak, &lastLog)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}

	d.CreatedAt = now
	d.UpdatedAt = now
	_, err = tx.Exec(ctx, `
		INSERT INTO diarios (id, user_id, title, description, category, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, d.ID, d.OwnerID, d.Title, d.Description, d.Category, d.ImageURL, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return 0, err
	}

	newStreak, advance := next(streak, lastLog, now)
	if advance {
		_, err = tx.Exec(ctx, `
			UPDATE users
			SET streak = $1, last_log_date = $2, updated_at = $2
			WHERE id = $3
		`, newStreak, now, d.OwnerID)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newStreak, nil
}

// List selects one page of the owner's entries. The owner condition is
// part of the predicate, never a post-hoc check; ordering is newest
// first with id as a deterministic tie-break.
func (r *DiaryRepository) List(ctx context.Context, ownerID string, f repository.DiaryFilter) ([]*entity.Diary, int, error) {
	where, args := buildListPredicate(ownerID, f)

	var total int
	countSQL := `SELECT count(*) FROM diarios WHERE ` + where
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := `SELECT ` + diaryColumns + ` FROM diarios WHERE ` + where +
		` ORDER BY created_at DESC, id DESC`
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		sql += ` LIMIT ` + strconv.Itoa(f.PageSize) +
			` OFFSET ` + strconv.Itoa((page-1)*f.PageSize)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*entity.Diary
	for rows.Next() {
		d, err := scanDiary(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func buildListPredicate(ownerID string, f repository.DiaryFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{ownerID}

	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, s)
		conds = append(conds, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if f.Category != "" && f.Category != entity.CategoryAll {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func (r *DiaryRepository) ListRange(ctx context.Context, ownerID string, from, to time.Time) ([]*entity.Diary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+diaryColumns+`
		FROM diarios
		WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC, id ASC
	`, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Diary
	for rows.Next() {
		d, err := scanDiary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DiaryRepository) GetByID(ctx context.Context, ownerID, id string) (*entity.Diary, error) {
	return scanDiary(r.pool.QueryRow(ctx, `
		SELECT `+diaryColumns+`
		FROM diarios
		WHERE id = $1 AND user_id = $2
	`, id, ownerID))
}

// Update touches only the caller's own row; matching zero rows is not an
// error so the existence of another user's entry is never revealed.
func (r *DiaryRepository) Update(ctx context.Context, d *entity.Diary) error {
	d.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx, `
		UPDATE diarios
		SET title = $1, description = $2, category = $3, image_url = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`, d.Title, d.Description, d.Category, d.ImageURL, d.UpdatedAt, d.ID, d.OwnerID)
	return err
}

func (r *DiaryRepository) Delete(ctx context.Context, ownerID, id string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM diarios
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	return err
}

var _ repository.DiaryRepository = (*DiaryRepository)(nil)
