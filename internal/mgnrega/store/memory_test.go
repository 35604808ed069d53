package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
)

func monthlyRecord(district, finYear, month string, wages float64) models.MonthlyDistrictRecord {
	return models.MonthlyDistrictRecord{
		State:     "MAHARASHTRA",
		District:  district,
		FinYear:   finYear,
		Month:     month,
		WagesPaid: wages,
	}
}

func TestMemoryUpsertIsIdempotentPerKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Upsert(ctx, monthlyRecord("PUNE", "2024-2025", "April", 1000)))
	require.NoError(t, s.Upsert(ctx, monthlyRecord("PUNE", "2024-2025", "April", 1200)))

	assert.Equal(t, 1, s.Len())

	got, ok := s.Get("MAHARASHTRA", "PUNE", "2024-2025", "April")
	require.True(t, ok)
	// Last write wins, insertion sequence is preserved.
	assert.Equal(t, 1200.0, got.WagesPaid)
	assert.Equal(t, int64(1), got.ID)
}

func TestMemoryUpsertOverwriteIsAuthoritative(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	first := monthlyRecord("PUNE", "2024-2025", "April", 1000)
	first.WomenPersondays = 500
	require.NoError(t, s.Upsert(ctx, first))

	// Second write carries a zero for women_persondays (field missing
	// upstream); the write replaces, it does not merge.
	require.NoError(t, s.Upsert(ctx, monthlyRecord("PUNE", "2024-2025", "April", 1200)))

	got, _ := s.Get("MAHARASHTRA", "PUNE", "2024-2025", "April")
	assert.Zero(t, got.WomenPersondays)
}

func TestMemoryUpsertRejectsIncompleteKey(t *testing.T) {
	s := NewMemory()
	err := s.Upsert(context.Background(), monthlyRecord("", "2024-2025", "April", 1))
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestMemoryHistoryOrderingAndWindow(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	months := []string{"April", "May", "June", "July", "August"}
	for i, m := range months {
		require.NoError(t, s.Upsert(ctx, monthlyRecord("PUNE", "2024-2025", m, float64(i))))
	}

	rows, err := s.History(ctx, "MAHARASHTRA", "PUNE", 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Newest first by insertion sequence.
	assert.Equal(t, "August", rows[0].Month)
	assert.Equal(t, "July", rows[1].Month)
	assert.Equal(t, "June", rows[2].Month)
}

func TestMemoryHistorySubstringDistrictMatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Upsert(ctx, monthlyRecord("PUNE", "2024-2025", "April", 1)))
	require.NoError(t, s.Upsert(ctx, monthlyRecord("NAGPUR", "2024-2025", "April", 2)))

	rows, err := s.History(ctx, "maharashtra", "pun", 12)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PUNE", rows[0].District)
}

func TestMemoryHistoryStateMustMatchExactly(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Upsert(ctx, monthlyRecord("PUNE", "2024-2025", "April", 1)))

	rows, err := s.History(ctx, "KARNATAKA", "PUNE", 12)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryRecordSyncRun(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.RecordSyncRun(context.Background(), models.SyncResult{RunID: "run-1", Upserted: 5}))

	runs := s.SyncRuns()
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].RunID)
}

func TestMemoryConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func(n int) {
			done <- s.Upsert(ctx, monthlyRecord("PUNE", "2024-2025", "April", float64(n)))
		}(i)
	}
	for i := 0; i < 20; i++ {
		require.NoError(t, <-done)
	}

	// Concurrent writers race on the value, never on the row count.
	assert.Equal(t, 1, s.Len())
}
