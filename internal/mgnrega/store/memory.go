package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
)

// MemoryStore is an in-memory Store with the same key and ordering
// semantics as the Postgres implementation. It backs unit tests and
// local development without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	rows   map[string]*models.MonthlyDistrictRecord
	nextID int64
	runs   []models.SyncResult
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		rows:   make(map[string]*models.MonthlyDistrictRecord),
		nextID: 1,
	}
}

func naturalKey(rec models.MonthlyDistrictRecord) string {
	return strings.ToUpper(rec.State) + "|" + strings.ToUpper(rec.District) + "|" + rec.FinYear + "|" + rec.Month
}

func (s *MemoryStore) Upsert(_ context.Context, rec models.MonthlyDistrictRecord) error {
	if rec.State == "" || rec.District == "" || rec.FinYear == "" || rec.Month == "" {
		return ErrMissingKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := naturalKey(rec)
	if existing, ok := s.rows[key]; ok {
		// Overwrite metrics in place, keep the original insertion
		// sequence, refresh last-synced.
		id := existing.ID
		updated := rec
		updated.ID = id
		updated.LastSynced = time.Now()
		s.rows[key] = &updated
		return nil
	}

	inserted := rec
	inserted.ID = s.nextID
	inserted.LastSynced = time.Now()
	s.nextID++
	s.rows[key] = &inserted
	return nil
}

func (s *MemoryStore) History(_ context.Context, state, district string, limit int) ([]models.MonthlyDistrictRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wantState := strings.ToUpper(state)
	wantDistrict := strings.ToUpper(district)

	var matched []models.MonthlyDistrictRecord
	for _, rec := range s.rows {
		if strings.ToUpper(rec.State) != wantState {
			continue
		}
		if !strings.Contains(strings.ToUpper(rec.District), wantDistrict) {
			continue
		}
		matched = append(matched, *rec)
	}

	// Newest first by insertion sequence, same as the SQL ORDER BY id DESC.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *MemoryStore) RecordSyncRun(_ context.Context, res models.SyncResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, res)
	return nil
}

// SyncRuns returns recorded run summaries, for tests.
func (s *MemoryStore) SyncRuns() []models.SyncResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SyncResult, len(s.runs))
	copy(out, s.runs)
	return out
}

// Len reports how many rows the store holds, for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Get returns the stored record for a natural key, for tests.
func (s *MemoryStore) Get(state, district, finYear, month string) (models.MonthlyDistrictRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rows[naturalKey(models.MonthlyDistrictRecord{State: state, District: district, FinYear: finYear, Month: month})]
	if !ok {
		return models.MonthlyDistrictRecord{}, false
	}
	return *rec, true
}
