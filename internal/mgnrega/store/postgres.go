package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
)

// Schema statements are executed one at a time; the pgx stdlib driver
// does not accept multi-statement strings over the extended protocol.
var schema = []string{`
CREATE TABLE IF NOT EXISTS mgnrega_monthly (
	id                      BIGSERIAL PRIMARY KEY,
	state_name              TEXT NOT NULL,
	district_name           TEXT NOT NULL,
	fin_year                TEXT NOT NULL,
	month                   TEXT NOT NULL,
	approved_labour_budget  DOUBLE PRECISION NOT NULL DEFAULT 0,
	average_wage_rate       DOUBLE PRECISION NOT NULL DEFAULT 0,
	average_days_employment DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_active_jobcards   DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_active_workers    DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_jobcards_issued   DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_workers           DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_households_worked DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_expenditure       DOUBLE PRECISION NOT NULL DEFAULT 0,
	wages_paid              DOUBLE PRECISION NOT NULL DEFAULT 0,
	women_persondays        DOUBLE PRECISION NOT NULL DEFAULT 0,
	completed_works         DOUBLE PRECISION NOT NULL DEFAULT 0,
	ongoing_works           DOUBLE PRECISION NOT NULL DEFAULT 0,
	percent_agriculture_exp DOUBLE PRECISION NOT NULL DEFAULT 0,
	sc_persondays           DOUBLE PRECISION NOT NULL DEFAULT 0,
	st_persondays           DOUBLE PRECISION NOT NULL DEFAULT 0,
	remarks                 TEXT NOT NULL DEFAULT '',
	last_synced             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT mgnrega_monthly_natural_key UNIQUE (state_name, district_name, fin_year, month)
);`, `
CREATE TABLE IF NOT EXISTS sync_runs (
	run_id   UUID PRIMARY KEY,
	fetched  INTEGER NOT NULL,
	matched  INTEGER NOT NULL,
	upserted INTEGER NOT NULL,
	failed   INTEGER NOT NULL,
	started  TIMESTAMPTZ NOT NULL,
	finished TIMESTAMPTZ NOT NULL
);`}

const upsertQuery = `
INSERT INTO mgnrega_monthly (
	state_name, district_name, fin_year, month,
	approved_labour_budget, average_wage_rate, average_days_employment,
	total_active_jobcards, total_active_workers, total_jobcards_issued,
	total_workers, total_households_worked, total_expenditure, wages_paid,
	women_persondays, completed_works, ongoing_works,
	percent_agriculture_exp, sc_persondays, st_persondays, remarks
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
ON CONFLICT (state_name, district_name, fin_year, month)
DO UPDATE SET
	approved_labour_budget  = EXCLUDED.approved_labour_budget,
	average_wage_rate       = EXCLUDED.average_wage_rate,
	average_days_employment = EXCLUDED.average_days_employment,
	total_active_jobcards   = EXCLUDED.total_active_jobcards,
	total_active_workers    = EXCLUDED.total_active_workers,
	total_jobcards_issued   = EXCLUDED.total_jobcards_issued,
	total_workers           = EXCLUDED.total_workers,
	total_households_worked = EXCLUDED.total_households_worked,
	total_expenditure       = EXCLUDED.total_expenditure,
	wages_paid              = EXCLUDED.wages_paid,
	women_persondays        = EXCLUDED.women_persondays,
	completed_works         = EXCLUDED.completed_works,
	ongoing_works           = EXCLUDED.ongoing_works,
	percent_agriculture_exp = EXCLUDED.percent_agriculture_exp,
	sc_persondays           = EXCLUDED.sc_persondays,
	st_persondays           = EXCLUDED.st_persondays,
	remarks                 = EXCLUDED.remarks,
	last_synced             = NOW();`

const historyQuery = `
SELECT id, state_name, district_name, fin_year, month,
	approved_labour_budget, average_wage_rate, average_days_employment,
	total_active_jobcards, total_active_workers, total_jobcards_issued,
	total_workers, total_households_worked, total_expenditure, wages_paid,
	women_persondays, completed_works, ongoing_works,
	percent_agriculture_exp, sc_persondays, st_persondays, remarks,
	last_synced
FROM mgnrega_monthly
WHERE state_name ILIKE $1 AND district_name ILIKE $2
ORDER BY id DESC
LIMIT $3;`

// PostgresStore persists monthly district records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed store and bootstraps the
// schema, so a fresh database is usable without a separate migration
// step.
func NewPostgres(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, rec models.MonthlyDistrictRecord) error {
	if rec.State == "" || rec.District == "" || rec.FinYear == "" || rec.Month == "" {
		return ErrMissingKey
	}
	_, err := s.db.ExecContext(ctx, upsertQuery,
		rec.State, rec.District, rec.FinYear, rec.Month,
		rec.ApprovedLabourBudget, rec.AverageWageRate, rec.AverageDaysEmployment,
		rec.TotalActiveJobcards, rec.TotalActiveWorkers, rec.TotalJobcardsIssued,
		rec.TotalWorkers, rec.TotalHouseholdsWorked, rec.TotalExpenditure, rec.WagesPaid,
		rec.WomenPersondays, rec.CompletedWorks, rec.OngoingWorks,
		rec.PercentAgricultureExp, rec.SCPersondays, rec.STPersondays, rec.Remarks,
	)
	if err != nil {
		return fmt.Errorf("upsert monthly record: %w", err)
	}
	return nil
}

func (s *PostgresStore) History(ctx context.Context, state, district string, limit int) ([]models.MonthlyDistrictRecord, error) {
	rows, err := s.db.QueryContext(ctx, historyQuery, state, "%"+district+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []models.MonthlyDistrictRecord
	for rows.Next() {
		var r models.MonthlyDistrictRecord
		err := rows.Scan(
			&r.ID, &r.State, &r.District, &r.FinYear, &r.Month,
			&r.ApprovedLabourBudget, &r.AverageWageRate, &r.AverageDaysEmployment,
			&r.TotalActiveJobcards, &r.TotalActiveWorkers, &r.TotalJobcardsIssued,
			&r.TotalWorkers, &r.TotalHouseholdsWorked, &r.TotalExpenditure, &r.WagesPaid,
			&r.WomenPersondays, &r.CompletedWorks, &r.OngoingWorks,
			&r.PercentAgricultureExp, &r.SCPersondays, &r.STPersondays, &r.Remarks,
			&r.LastSynced,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) RecordSyncRun(ctx context.Context, res models.SyncResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sync_runs (run_id, fetched, matched, upserted, failed, started, finished)
		 VALUES ($1,$2,$3,$4,$5,$6,$7);`,
		res.RunID, res.Fetched, res.Matched, res.Upserted, res.Failed, res.Started, res.Finished,
	)
	if err != nil {
		return fmt.Errorf("record sync run: %w", err)
	}
	return nil
}
