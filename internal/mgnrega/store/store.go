package store

import (
	"context"
	"errors"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
)

// Store is the persistence boundary for monthly district records.
// Implementations enforce at most one row per natural key
// (state, district, fin_year, month).
type Store interface {
	// Upsert inserts the record or, when the natural key exists,
	// overwrites every metric column with the new values and refreshes
	// the last-synced timestamp. The write is authoritative, not a
	// merge: a zero derived from a now-missing upstream field replaces
	// the previous value.
	Upsert(ctx context.Context, rec models.MonthlyDistrictRecord) error

	// History returns up to limit rows matching the state exactly and
	// the district as a substring, both case-insensitively, newest
	// first by insertion sequence.
	History(ctx context.Context, state, district string, limit int) ([]models.MonthlyDistrictRecord, error)

	// RecordSyncRun persists one ingestion run summary.
	RecordSyncRun(ctx context.Context, res models.SyncResult) error
}

// ErrMissingKey rejects writes whose natural key is incomplete.
var ErrMissingKey = errors.New("record is missing part of its natural key")
