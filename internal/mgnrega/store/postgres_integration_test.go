//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/store"
	"github.com/Mayank06R/our-voice-rights/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())

	var err error
	s.store, err = store.NewPostgres(context.Background(), s.postgres.DB)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	s.postgres.Terminate(context.Background())
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "mgnrega_monthly", "sync_runs")
	s.Require().NoError(err)
}

func record(district, month string, wages float64) models.MonthlyDistrictRecord {
	return models.MonthlyDistrictRecord{
		State:     "MAHARASHTRA",
		District:  district,
		FinYear:   "2024-2025",
		Month:     month,
		WagesPaid: wages,
	}
}

func (s *PostgresStoreSuite) TestUpsertEnforcesNaturalKey() {
	ctx := context.Background()

	s.Require().NoError(s.store.Upsert(ctx, record("PUNE", "April", 1000)))
	s.Require().NoError(s.store.Upsert(ctx, record("PUNE", "April", 1200)))

	rows, err := s.store.History(ctx, "MAHARASHTRA", "PUNE", 12)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(1200.0, rows[0].WagesPaid)
	s.False(rows[0].LastSynced.IsZero())
}

func (s *PostgresStoreSuite) TestUpsertOverwritesWithZero() {
	ctx := context.Background()

	first := record("PUNE", "April", 1000)
	first.WomenPersondays = 750
	s.Require().NoError(s.store.Upsert(ctx, first))

	s.Require().NoError(s.store.Upsert(ctx, record("PUNE", "April", 1000)))

	rows, err := s.store.History(ctx, "MAHARASHTRA", "PUNE", 12)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Zero(rows[0].WomenPersondays)
}

func (s *PostgresStoreSuite) TestHistoryWindowAndOrdering() {
	ctx := context.Background()

	months := []string{
		"April", "May", "June", "July", "August", "September",
		"October", "November", "December", "January", "February", "March",
	}
	for i, m := range months {
		s.Require().NoError(s.store.Upsert(ctx, record("PUNE", m, float64(i))))
	}
	next := record("PUNE", "April", 99)
	next.FinYear = "2025-2026"
	s.Require().NoError(s.store.Upsert(ctx, next))

	rows, err := s.store.History(ctx, "MAHARASHTRA", "PUNE", 12)
	s.Require().NoError(err)
	s.Require().Len(rows, 12)

	// Newest first by insertion sequence: the 13th write leads, the
	// very first (April 2024-2025) drops out of the window.
	s.Equal("2025-2026", rows[0].FinYear)
	s.Equal("May", rows[11].Month)
	for i := 1; i < len(rows); i++ {
		s.Greater(rows[i-1].ID, rows[i].ID)
	}
}

func (s *PostgresStoreSuite) TestHistoryMatchesDistrictSubstring() {
	ctx := context.Background()

	s.Require().NoError(s.store.Upsert(ctx, record("PUNE", "April", 1)))
	s.Require().NoError(s.store.Upsert(ctx, record("NAGPUR", "April", 2)))

	rows, err := s.store.History(ctx, "maharashtra", "pun", 12)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("PUNE", rows[0].District)
}

func (s *PostgresStoreSuite) TestRecordSyncRun() {
	ctx := context.Background()

	now := time.Now()
	res := models.SyncResult{
		RunID:    uuid.NewString(),
		Fetched:  100,
		Matched:  34,
		Upserted: 33,
		Failed:   1,
		Started:  now.Add(-2 * time.Second),
		Finished: now,
	}

	s.Require().NoError(s.store.RecordSyncRun(ctx, res))

	var count int
	err := s.postgres.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM sync_runs").Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}
