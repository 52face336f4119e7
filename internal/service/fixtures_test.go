package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
	"github.com/Mykola-art/shopsTestTask/internal/models"
	appErrors "github.com/Mykola-art/shopsTestTask/pkg/errors"
)

// Conversions are anchored to the week of Monday 2024-01-08, when New York is on EST
// and London on GMT.
var referenceWeek = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

// mondayAfternoon is 09:30 in New York and 14:30 in London.
var mondayAfternoon = time.Date(2024, 1, 8, 14, 30, 0, 0, time.UTC)

func newTestEvaluator(t *testing.T) *availability.Evaluator {
	t.Helper()
	zones, err := availability.NewSystemZones("America/New_York", "Europe/London", "Asia/Tokyo")
	require.NoError(t, err)
	return availability.NewEvaluator(availability.NewConverter(zones, availability.FixedWeek(referenceWeek)))
}

func weekly(t *testing.T, days map[availability.Weekday]availability.Interval) models.OperatingHours {
	t.Helper()
	s, err := availability.NewWeeklySchedule(days)
	require.NoError(t, err)
	return models.OperatingHours{WeeklySchedule: s}
}

func fixtureStores(t *testing.T) []models.Store {
	return []models.Store{
		{ID: "11111111-1111-1111-1111-111111111111", Slug: "new-york", Name: "New York", Timezone: "America/New_York",
			OperatingHours: weekly(t, map[availability.Weekday]availability.Interval{availability.Monday: availability.MustInterval("09:00", "17:00")})},
		{ID: "22222222-2222-2222-2222-222222222222", Slug: "london", Name: "London", Timezone: "Europe/London",
			OperatingHours: weekly(t, map[availability.Weekday]availability.Interval{availability.Monday: availability.MustInterval("10:00", "18:00")})},
		{ID: "33333333-3333-3333-3333-333333333333", Slug: "tokyo", Name: "Tokyo", Timezone: "Asia/Tokyo",
			OperatingHours: weekly(t, map[availability.Weekday]availability.Interval{availability.Tuesday: availability.MustInterval("08:00", "10:00")})},
	}
}

func storeIDs(stores []models.Store) []string {
	ids := make([]string, len(stores))
	for i, s := range stores {
		ids[i] = s.Slug
	}
	return ids
}

type storeRepoStub struct {
	mu        sync.Mutex
	stores    []models.Store
	listCalls []models.StoreFilter
	created   []*models.Store
	updated   []*models.Store
	slugTaken bool
	stats     *models.StoreStats
	statsAt   []time.Time
	err       error
}

func (s *storeRepoStub) List(ctx context.Context, filter models.StoreFilter) ([]models.Store, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls = append(s.listCalls, filter)
	if s.err != nil {
		return nil, 0, s.err
	}
	items := s.stores
	if filter.PageSize > 0 {
		lo := min((filter.Page-1)*filter.PageSize, len(items))
		items = items[lo:min(lo+filter.PageSize, len(items))]
	}
	return items, len(s.stores), nil
}

func (s *storeRepoStub) All(ctx context.Context) ([]models.Store, error) {
	return s.stores, s.err
}

func (s *storeRepoStub) FindByID(ctx context.Context, id string) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, store := range s.stores {
		if store.ID == id {
			found := store
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *storeRepoStub) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	return s.slugTaken, nil
}

func (s *storeRepoStub) Create(ctx context.Context, store *models.Store) error {
	store.ID = "44444444-4444-4444-4444-444444444444"
	s.created = append(s.created, store)
	return s.err
}

func (s *storeRepoStub) Update(ctx context.Context, store *models.Store) error {
	s.updated = append(s.updated, store)
	return s.err
}

func (s *storeRepoStub) Delete(ctx context.Context, id string) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return nil
}

func (s *storeRepoStub) Stats(ctx context.Context, id string, now time.Time) (*models.StoreStats, error) {
	s.statsAt = append(s.statsAt, now)
	if s.stats == nil {
		return nil, errors.New("stats unavailable")
	}
	stats := *s.stats
	stats.StoreID = id
	return &stats, nil
}

type invalidatorStub struct {
	patterns []string
}

func (s *invalidatorStub) Invalidate(ctx context.Context, patterns ...string) {
	s.patterns = append(s.patterns, patterns...)
}

// memoryCache mimics the Redis repository, including JSON round trips.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func dayPtr(d availability.Weekday) *availability.Weekday { return &d }

func clockPtr(raw string) *availability.TimeOfDay {
	t := availability.MustTimeOfDay(raw)
	return &t
}

func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, appErrors.FromError(err).Code, err.Error())
}
