package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
	repo "github.com/mcomanduci/diario-de-gratidao/internal/domain/repository"
)

// fakeDiaryRepo is an in-memory DiaryRepository mirroring the Postgres
// implementation's filter and ordering semantics.
type fakeDiaryRepo struct {
	entries []*entity.Diary
	streak  int
	lastLog *time.Time
}

func (f *fakeDiaryRepo) CreateWithStreak(_ context.Context, d *entity.Diary, now time.Time, next repo.StreakFunc) (int, error) {
	d.CreatedAt = now
	d.UpdatedAt = now
	f.entries = append(f.entries, d)

	newStreak, advance := next(f.streak, f.lastLog, now)
	if advance {
		f.streak = newStreak
		f.lastLog = &now
	}
	return f.streak, nil
}

func (f *fakeDiaryRepo) List(_ context.Context, ownerID string, flt repo.DiaryFilter) ([]*entity.Diary, int, error) {
	var matched []*entity.Diary
	for _, d := range f.entries {
		if d.OwnerID != ownerID {
			continue
		}
		if flt.Search != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(flt.Search)) {
			continue
		}
		if flt.Category != "" && d.Category != flt.Category {
			continue
		}
		matched = append(matched, d)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	if flt.PageSize > 0 {
		page := flt.Page
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * flt.PageSize
		if offset >= total {
			return []*entity.Diary{}, total, nil
		}
		end := offset + flt.PageSize
		if end > total {
			end = total
		}
		matched = matched[offset:end]
	}
	return matched, total, nil
}

func (f *fakeDiaryRepo) ListRange(_ context.Context, ownerID string, from, to time.Time) ([]*entity.Diary, error) {
	var out []*entity.Diary
	for _, d := range f.entries {
		if d.OwnerID != ownerID || d.CreatedAt.Before(from) || d.CreatedAt.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDiaryRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Diary, error) {
	for _, d := range f.entries {
		if d.OwnerID == ownerID && d.ID == id {
			return d, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeDiaryRepo) Update(_ context.Context, d *entity.Diary) error {
	for _, e := range f.entries {
		if e.OwnerID == d.OwnerID && e.ID == d.ID {
			e.Title = d.Title
			e.Description = d.Description
			e.Category = d.Category
			e.ImageURL = d.ImageURL
			return nil
		}
	}
	return nil
}

func (f *fakeDiaryRepo) Delete(_ context.Context, ownerID, id string) error {
	for i, e := range f.entries {
		if e.OwnerID == ownerID && e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestService(f *fakeDiaryRepo) *DiaryService {
	return NewDiaryService(f, nil, nil, nil, "", time.Minute)
}

func validInput() EntryInput {
	return EntryInput{
		Title:       "Um bom dia",
		Description: "Grato pelo café da manhã em família.",
		Category:    string(entity.CategoryFamily),
		ImageURL:    CloudinaryURLPrefix + "demo/image/upload/sample.jpg",
	}
}

func intp(n int) *int { return &n }

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EntryInput)
	}{
		{"empty title", func(in *EntryInput) { in.Title = "   " }},
		{"title too long", func(in *EntryInput) { in.Title = strings.Repeat("a", MaxTitleLength+1) }},
		{"empty description", func(in *EntryInput) { in.Description = "" }},
		{"description too long", func(in *EntryInput) { in.Description = strings.Repeat("b", MaxDescriptionLength+1) }},
		{"unknown category", func(in *EntryInput) { in.Category = "Hobby" }},
		{"all is not a valid entry category", func(in *EntryInput) { in.Category = string(entity.CategoryAll) }},
		{"non-cloudinary image", func(in *EntryInput) { in.ImageURL = "https://example.com/img.png" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeDiaryRepo{})
			in := validInput()
			tt.mutate(&in)
			_, _, err := svc.Create(context.Background(), "owner-1", in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Create() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCreateTitleAtLimitAccepted(t *testing.T) {
	svc := newTestService(&fakeDiaryRepo{})
	in := validInput()
	in.Title = strings.Repeat("á", MaxTitleLength) // rune count, not bytes

	d, streak, err := svc.Create(context.Background(), "owner-1", in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if d.ID == "" {
		t.Error("Create() returned empty id")
	}
	if streak != 1 {
		t.Errorf("streak = %d, want 1", streak)
	}
}

func TestCreateStreakProgression(t *testing.T) {
	f := &fakeDiaryRepo{}
	svc := newTestService(f)
	ctx := context.Background()

	if _, streak, err := svc.Create(ctx, "owner-1", validInput()); err != nil || streak != 1 {
		t.Fatalf("first create: streak = %d, err = %v, want 1, nil", streak, err)
	}

	// A second entry on the same day leaves the streak alone.
	if _, streak, err := svc.Create(ctx, "owner-1", validInput()); err != nil || streak != 1 {
		t.Fatalf("same-day create: streak = %d, err = %v, want 1, nil", streak, err)
	}

	// Pretend the last log was yesterday.
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	f.lastLog = &yesterday
	if _, streak, err := svc.Create(ctx, "owner-1", validInput()); err != nil || streak != 2 {
		t.Fatalf("next-day create: streak = %d, err = %v, want 2, nil", streak, err)
	}
}

func TestListOwnerIsolation(t *testing.T) {
	f := &fakeDiaryRepo{}
	svc := newTestService(f)
	ctx := context.Background()

	if _, _, err := svc.Create(ctx, "owner-1", validInput()); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Create(ctx, "owner-2", validInput()); err != nil {
		t.Fatal(err)
	}

	entries, total, err := svc.List(ctx, "owner-1", ListInput{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Errorf("List() total = %d, len = %d, want 1, 1", total, len(entries))
	}
	if entries[0].OwnerID != "owner-1" {
		t.Errorf("leaked entry owned by %q", entries[0].OwnerID)
	}
}

func TestListFilterValidation(t *testing.T) {
	svc := newTestService(&fakeDiaryRepo{})
	ctx := context.Background()

	tests := []struct {
		name string
		in   ListInput
	}{
		{"search too long", ListInput{Search: strings.Repeat("x", MaxSearchLength+1)}},
		{"bad category", ListInput{Category: "Hobby"}},
		{"page size zero", ListInput{PageSize: intp(0)}},
		{"page size above max", ListInput{PageSize: intp(MaxPageSize + 1)}},
		{"negative page", ListInput{Page: intp(-1)}},
		{"page zero", ListInput{Page: intp(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.List(ctx, "owner-1", tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("List() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestListCategoryAllMeansNoFilter(t *testing.T) {
	f := &fakeDiaryRepo{}
	svc := newTestService(f)
	ctx := context.Background()

	work := validInput()
	work.Category = string(entity.CategoryWork)
	if _, _, err := svc.Create(ctx, "owner-1", work); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Create(ctx, "owner-1", validInput()); err != nil {
		t.Fatal(err)
	}

	_, total, err := svc.List(ctx, "owner-1", ListInput{Category: string(entity.CategoryAll)})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}

	_, total, err = svc.List(ctx, "owner-1", ListInput{Category: string(entity.CategoryWork)})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 {
		t.Errorf("filtered total = %d, want 1", total)
	}
}

func TestListPagination(t *testing.T) {
	f := &fakeDiaryRepo{}
	svc := newTestService(f)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if _, _, err := svc.Create(ctx, "owner-1", validInput()); err != nil {
			t.Fatal(err)
		}
	}

	entries, total, err := svc.List(ctx, "owner-1", ListInput{Page: intp(3), PageSize: intp(10)})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 25 {
		t.Errorf("total = %d, want 25 (pre-pagination count)", total)
	}
	if len(entries) != 5 {
		t.Errorf("page 3 length = %d, want 5", len(entries))
	}

	// Past the last page: empty page, same total.
	entries, total, err = svc.List(ctx, "owner-1", ListInput{Page: intp(4), PageSize: intp(10)})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 25 || len(entries) != 0 {
		t.Errorf("past-end page: total = %d, len = %d, want 25, 0", total, len(entries))
	}
}

func TestGetRejectsMalformedID(t *testing.T) {
	svc := newTestService(&fakeDiaryRepo{})
	if _, err := svc.Get(context.Background(), "owner-1", "not-a-uuid"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Get() error = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateForeignEntryReportsSuccess(t *testing.T) {
	f := &fakeDiaryRepo{}
	svc := newTestService(f)
	ctx := context.Background()

	d, _, err := svc.Create(ctx, "owner-1", validInput())
	if err != nil {
		t.Fatal(err)
	}

	// Another user updating that id matches zero rows and still succeeds.
	in := validInput()
	in.Title = "hijacked"
	if err := svc.Update(ctx, "owner-2", d.ID, in); err != nil {
		t.Fatalf("Update() error = %v, want nil", err)
	}

	got, err := svc.Get(ctx, "owner-1", d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title == "hijacked" {
		t.Error("foreign update modified the entry")
	}
}

func TestDeleteForeignEntryReportsSuccess(t *testing.T) {
	f := &fakeDiaryRepo{}
	svc := newTestService(f)
	ctx := context.Background()

	d, _, err := svc.Create(ctx, "owner-1", validInput())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, "owner-2", d.ID); err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}
	if _, err := svc.Get(ctx, "owner-1", d.ID); err != nil {
		t.Errorf("entry disappeared after foreign delete: %v", err)
	}
}

func TestMonthlyStatsFromRepo(t *testing.T) {
	f := &fakeDiaryRepo{}
	svc := newTestService(f)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		if _, _, err := svc.Create(ctx, "owner-1", validInput()); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := svc.MonthlyStats(ctx, "owner-1", now)
	if err != nil {
		t.Fatalf("MonthlyStats() error = %v", err)
	}
	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	if stats.TopCategory != string(entity.CategoryFamily) {
		t.Errorf("TopCategory = %q, want %q", stats.TopCategory, entity.CategoryFamily)
	}
}
