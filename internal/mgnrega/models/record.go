package models

import "time"

// RawRecord is one upstream row exactly as the open-data API returned
// it: loosely typed, inconsistently cased field names, values that may
// be strings, numbers, or absent. It exists only at the API boundary;
// the field mapper converts it before anything else touches it.
type RawRecord map[string]any

// Upstream field names as data.gov.in publishes them. Casing is theirs.
const (
	FieldState    = "state_name"
	FieldDistrict = "district_name"
	FieldFinYear  = "fin_year"
	FieldMonth    = "month"

	FieldApprovedLabourBudget  = "Approved_Labour_Budget"
	FieldAverageWageRate       = "Average_Wage_rate_per_day_per_person"
	FieldAverageDaysEmployment = "Average_days_of_employment_provided_per_Household"
	FieldTotalActiveJobcards   = "Total_No_of_Active_Job_Cards"
	FieldTotalActiveWorkers    = "Total_No_of_Active_Workers"
	FieldTotalJobcardsIssued   = "Total_No_of_JobCards_issued"
	FieldTotalWorkers          = "Total_No_of_Workers"
	FieldTotalHouseholdsWorked = "Total_Households_Worked"
	FieldTotalExpenditure      = "Total_Exp"
	FieldWagesPaid             = "Wages"
	FieldWomenPersondays       = "Women_Persondays"
	FieldCompletedWorks        = "Number_of_Completed_Works"
	FieldOngoingWorks          = "Number_of_Ongoing_Works"
	FieldPercentAgricultureExp = "percent_of_Expenditure_on_Agriculture_Allied_Works"
	FieldSCPersondays          = "SC_persondays"
	FieldSTPersondays          = "ST_persondays"
	FieldRemarks               = "Remarks"
)

// MonthlyDistrictRecord is the canonical persisted entity. The
// (State, District, FinYear, Month) tuple is the natural key; the store
// enforces at most one row per key. ID is the insertion sequence the
// store assigns on first write and LastSynced tracks the most recent
// successful upsert.
type MonthlyDistrictRecord struct {
	ID         int64     `json:"-"`
	State      string    `json:"state_name"`
	District   string    `json:"district_name"`
	FinYear    string    `json:"fin_year"`
	Month      string    `json:"month"`
	LastSynced time.Time `json:"-"`

	ApprovedLabourBudget  float64 `json:"approved_labour_budget"`
	AverageWageRate       float64 `json:"average_wage_rate"`
	AverageDaysEmployment float64 `json:"average_days_employment"`
	TotalActiveJobcards   float64 `json:"total_active_jobcards"`
	TotalActiveWorkers    float64 `json:"total_active_workers"`
	TotalJobcardsIssued   float64 `json:"total_jobcards_issued"`
	TotalWorkers          float64 `json:"total_workers"`
	TotalHouseholdsWorked float64 `json:"total_households_worked"`
	TotalExpenditure      float64 `json:"total_expenditure"`
	WagesPaid             float64 `json:"wages_paid"`
	WomenPersondays       float64 `json:"women_persondays"`
	CompletedWorks        float64 `json:"completed_works"`
	OngoingWorks          float64 `json:"ongoing_works"`
	PercentAgricultureExp float64 `json:"percent_agriculture_exp"`
	SCPersondays          float64 `json:"sc_persondays"`
	STPersondays          float64 `json:"st_persondays"`
	Remarks               string  `json:"remarks"`
}

// Unavailable is the sentinel the live view returns for fields the
// upstream record did not carry. It is deliberately distinct from a
// stored zero: zero means no recorded activity, Unavailable means the
// upstream omitted the field in this call.
const Unavailable = "N/A"

// Performance is the live-path view of one district's latest upstream
// record. Every field is a string so absent values can surface as the
// Unavailable sentinel instead of being conflated with zero.
type Performance struct {
	State                 string `json:"state"`
	District              string `json:"district"`
	FinYear               string `json:"fin_year"`
	Month                 string `json:"month"`
	ApprovedLabourBudget  string `json:"approved_labour_budget"`
	AverageWageRate       string `json:"average_wage_rate"`
	AverageDaysEmployment string `json:"average_days_employment"`
	TotalActiveJobcards   string `json:"total_active_jobcards"`
	TotalActiveWorkers    string `json:"total_active_workers"`
	TotalJobcardsIssued   string `json:"total_jobcards_issued"`
	TotalWorkers          string `json:"total_workers"`
	TotalHouseholdsWorked string `json:"total_households_worked"`
	TotalExpenditure      string `json:"total_expenditure"`
	WagesPaid             string `json:"wages_paid"`
	WomenPersondays       string `json:"women_persondays"`
	CompletedWorks        string `json:"completed_works"`
	OngoingWorks          string `json:"ongoing_works"`
	PercentAgricultureExp string `json:"percent_agriculture_exp"`
	SCPersondays          string `json:"sc_persondays"`
	STPersondays          string `json:"st_persondays"`
	Remarks               string `json:"remarks"`
}

// District is one entry of the region-unique district list.
type District struct {
	State    string `json:"state"`
	District string `json:"district"`
}

// History is the bounded, oldest-first series for one district. Months
// holds "<month> <fin_year>" labels parallel to Data.
type History struct {
	District string                  `json:"district"`
	Months   []string                `json:"months"`
	Data     []MonthlyDistrictRecord `json:"data"`
}

// SyncResult summarizes one ingestion run.
type SyncResult struct {
	RunID    string    `json:"run_id"`
	Fetched  int       `json:"fetched"`
	Matched  int       `json:"matched"`
	Upserted int       `json:"upserted"`
	Failed   int       `json:"failed"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}
