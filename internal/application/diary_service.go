package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
	repo "github.com/mcomanduci/diario-de-gratidao/internal/domain/repository"
	"github.com/mcomanduci/diario-de-gratidao/pkg/helpers"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxSearchLength      = 100
	MaxPageSize          = 100

	// CloudinaryURLPrefix is the only origin accepted for entry images.
	CloudinaryURLPrefix = "https://res.cloudinary.com/"
)

// DiaryService owns the journal-entry use cases: CRUD behind owner
// scoping, list filtering, monthly statistics, export, and the optional
// Elasticsearch full-text index. Redis and ES are best-effort
// collaborators; the Postgres repository is the source of truth.
type DiaryService struct {
	Repo           repo.DiaryRepository
	Redis          *redis.Client
	Logger         *logrus.Logger
	ES             *elasticsearch.Client
	ESDiariesIndex string
	StatsCacheTTL  time.Duration
}

func NewDiaryService(r repo.DiaryRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, statsTTL time.Duration) *DiaryService {
	return &DiaryService{
		Repo:           r,
		Redis:          rdb,
		Logger:         logger,
		ES:             es,
		ESDiariesIndex: esIndex,
		StatsCacheTTL:  statsTTL,
	}
}

// EntryInput carries the user-editable fields of a diary entry.
type EntryInput struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
}

// ListInput carries the optional list filters. Nil Page/PageSize mean
// "not provided"; a provided value outside its range is rejected, never
// clamped.
type ListInput struct {
	Search   string
	Category string
	Page     *int
	PageSize *int
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (in EntryInput) validate() (EntryInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" {
		return in, invalidf("title is required")
	}
	if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		return in, invalidf("title must be at most %d characters", MaxTitleLength)
	}
	if in.Description == "" {
		return in, invalidf("description is required")
	}
	if utf8.RuneCountInString(in.Description) > MaxDescriptionLength {
		return in, invalidf("description must be at most %d characters", MaxDescriptionLength)
	}
	if _, ok := entity.ParseCategory(in.Category); !ok {
		return in, invalidf("invalid category %q", in.Category)
	}
	if !strings.HasPrefix(in.ImageURL, CloudinaryURLPrefix) {
		return in, invalidf("image URL must be a Cloudinary URL")
	}
	return in, nil
}

func validateEntryID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalidf("invalid entry id")
	}
	return nil
}

// Create inserts the entry and applies the owner's streak transition in
// one transaction. Returns the created entry and the streak after the
// transition.
func (s *DiaryService) Create(ctx context.Context, ownerID string, in EntryInput) (*entity.Diary, int, error) {
	in, err := in.validate()
	if err != nil {
		return nil, 0, err
	}

	d := &entity.Diary{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    entity.Category(in.Category),
		ImageURL:    in.ImageURL,
	}
	streak, err := s.Repo.CreateWithStreak(ctx, d, time.Now().UTC(), NextStreak)
	if err != nil {
		return nil, 0, err
	}

	s.invalidateStatsCache(ctx, ownerID, d.CreatedAt)
	s.indexDiary(ctx, d)
	return d, streak, nil
}

// List returns one page of the owner's entries plus the pre-pagination
// total. Filters are validated before any query runs.
func (s *DiaryService) List(ctx context.Context, ownerID string, in ListInput) ([]*entity.Diary, int, error) {
	search := strings.TrimSpace(in.Search)
	if utf8.RuneCountInString(search) > MaxSearchLength {
		return nil, 0, invalidf("search text must be at most %d characters", MaxSearchLength)
	}

	f := repo.DiaryFilter{Search: search}

	if in.Category != "" && in.Category != string(entity.CategoryAll) {
		c, ok := entity.ParseCategory(in.Category)
		if !ok {
			return nil, 0, invalidf("invalid category %q", in.Category)
		}
		f.Category = c
	}
	if in.PageSize != nil {
		if *in.PageSize < 1 || *in.PageSize > MaxPageSize {
			return nil, 0, invalidf("page size must be between 1 and %d", MaxPageSize)
		}
		f.PageSize = *in.PageSize
	}
	if in.Page != nil {
		if *in.Page < 1 {
			return nil, 0, invalidf("page must be at least 1")
		}
		f.Page = *in.Page
	}

	return s.Repo.List(ctx, ownerID, f)
}

func (s *DiaryService) Get(ctx context.Context, ownerID, id string) (*entity.Diary, error) {
	if err := validateEntryID(id); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, ownerID, id)
}

// Update edits the caller's own entry. An id that is absent or owned by
// someone else matches zero rows and still reports success.
func (s *DiaryService) Update(ctx context.Context, ownerID, id string, in EntryInput) error {
	if err := validateEntryID(id); err != nil {
		return err
	}
	in, err := in.validate()
	if err != nil {
		return err
	}

	d := &entity.Diary{
		ID:          id,
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    entity.Category(in.Category),
		ImageURL:    in.ImageURL,
	}
	if err := s.Repo.Update(ctx, d); err != nil {
		return err
	}

	s.invalidateStatsCache(ctx, ownerID, time.Now().UTC())
	s.indexDiary(ctx, d)
	return nil
}

func (s *DiaryService) Delete(ctx context.Context, ownerID, id string) error {
	if err := validateEntryID(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidateStatsCache(ctx, ownerID, time.Now().UTC())
	s.removeFromIndex(ctx, id)
	return nil
}

// Export returns every entry of the owner, newest first.
func (s *DiaryService) Export(ctx context.Context, ownerID string) ([]*entity.Diary, error) {
	entries, _, err := s.Repo.List(ctx, ownerID, repo.DiaryFilter{})
	return entries, err
}

func statsCacheKey(ownerID string, t time.Time) string {
	return "stats:monthly:" + ownerID + ":" + t.UTC().Format("2006-01")
}

// MonthlyStats aggregates the owner's current-month entries. Results are
// cached in Redis for a short TTL and invalidated by any entry mutation.
func (s *DiaryService) MonthlyStats(ctx context.Context, ownerID string, now time.Time) (MonthlyStats, error) {
	key := statsCacheKey(ownerID, now)
	if s.Redis != nil {
		var cached MonthlyStats
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	start, end := MonthBounds(now)
	entries, err := s.Repo.ListRange(ctx, ownerID, start, end)
	if err != nil {
		return MonthlyStats{}, err
	}
	stats := ComputeMonthlyStats(entries, start, end)

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, stats, s.StatsCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("stats cache set failed")
		}
	}
	return stats, nil
}

func (s *DiaryService) invalidateStatsCache(ctx context.Context, ownerID string, t time.Time) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, statsCacheKey(ownerID, t)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("owner_id", ownerID).Warn("stats cache invalidation failed")
	}
}

// indexDiary mirrors the entry into Elasticsearch for full-text search.
// Indexing is best-effort; Postgres stays the source of truth.
func (s *DiaryService) indexDiary(ctx context.Context, d *entity.Diary) {
	if s.ES == nil || s.ESDiariesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          d.ID,
		"owner_id":    d.OwnerID,
		"title":       d.Title,
		"description": d.Description,
		"category":    d.Category,
		"image_url":   d.ImageURL,
		"created_at":  d.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESDiariesIndex, DocumentID: d.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("diary_id", d.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("diary_id", d.ID).Warn("es index response error")
	}
}

func (s *DiaryService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESDiariesIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req := esapi.DeleteRequest{Index: s.ESDiariesIndex, DocumentID: id}
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("diary_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchFullText queries the Elasticsearch index over title and
// description, always filtered to the owner. Returns an empty result
// when ES is not configured.
func (s *DiaryService) SearchFullText(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESDiariesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"owner_id": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESDiariesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
