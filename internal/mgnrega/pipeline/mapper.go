package pipeline

import (
	"strconv"
	"strings"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
)

// The same upstream absence is represented two different ways depending
// on the consumer. MapForStore coerces missing metrics to zero so the
// store never holds nulls; MapForDisplay surfaces them as the
// models.Unavailable sentinel so a dashboard can tell "no activity"
// from "no data". Keep both policies explicit; do not merge them.

// MapForStore projects a raw upstream record into the canonical
// persisted shape. Absent or non-numeric metric values become zero.
func MapForStore(raw models.RawRecord) models.MonthlyDistrictRecord {
	return models.MonthlyDistrictRecord{
		// State and district are normalized to uppercase so the natural
		// key is stable regardless of upstream casing.
		State:    strings.ToUpper(strings.TrimSpace(textOrEmpty(raw[models.FieldState]))),
		District: strings.ToUpper(strings.TrimSpace(textOrEmpty(raw[models.FieldDistrict]))),
		FinYear:  textOrEmpty(raw[models.FieldFinYear]),
		Month:    textOrEmpty(raw[models.FieldMonth]),

		ApprovedLabourBudget:  numberOrZero(raw[models.FieldApprovedLabourBudget]),
		AverageWageRate:       numberOrZero(raw[models.FieldAverageWageRate]),
		AverageDaysEmployment: numberOrZero(raw[models.FieldAverageDaysEmployment]),
		TotalActiveJobcards:   numberOrZero(raw[models.FieldTotalActiveJobcards]),
		TotalActiveWorkers:    numberOrZero(raw[models.FieldTotalActiveWorkers]),
		TotalJobcardsIssued:   numberOrZero(raw[models.FieldTotalJobcardsIssued]),
		TotalWorkers:          numberOrZero(raw[models.FieldTotalWorkers]),
		TotalHouseholdsWorked: numberOrZero(raw[models.FieldTotalHouseholdsWorked]),
		TotalExpenditure:      numberOrZero(raw[models.FieldTotalExpenditure]),
		WagesPaid:             numberOrZero(raw[models.FieldWagesPaid]),
		WomenPersondays:       numberOrZero(raw[models.FieldWomenPersondays]),
		CompletedWorks:        numberOrZero(raw[models.FieldCompletedWorks]),
		OngoingWorks:          numberOrZero(raw[models.FieldOngoingWorks]),
		PercentAgricultureExp: numberOrZero(raw[models.FieldPercentAgricultureExp]),
		SCPersondays:          numberOrZero(raw[models.FieldSCPersondays]),
		STPersondays:          numberOrZero(raw[models.FieldSTPersondays]),
		Remarks:               textOrEmpty(raw[models.FieldRemarks]),
	}
}

// MapForDisplay projects a raw upstream record into the live snapshot
// view. Absent or empty values become the Unavailable sentinel.
func MapForDisplay(raw models.RawRecord) models.Performance {
	return models.Performance{
		State:                 textOrNA(raw[models.FieldState]),
		District:              textOrNA(raw[models.FieldDistrict]),
		FinYear:               textOrNA(raw[models.FieldFinYear]),
		Month:                 textOrNA(raw[models.FieldMonth]),
		ApprovedLabourBudget:  textOrNA(raw[models.FieldApprovedLabourBudget]),
		AverageWageRate:       textOrNA(raw[models.FieldAverageWageRate]),
		AverageDaysEmployment: textOrNA(raw[models.FieldAverageDaysEmployment]),
		TotalActiveJobcards:   textOrNA(raw[models.FieldTotalActiveJobcards]),
		TotalActiveWorkers:    textOrNA(raw[models.FieldTotalActiveWorkers]),
		TotalJobcardsIssued:   textOrNA(raw[models.FieldTotalJobcardsIssued]),
		TotalWorkers:          textOrNA(raw[models.FieldTotalWorkers]),
		TotalHouseholdsWorked: textOrNA(raw[models.FieldTotalHouseholdsWorked]),
		TotalExpenditure:      textOrNA(raw[models.FieldTotalExpenditure]),
		WagesPaid:             textOrNA(raw[models.FieldWagesPaid]),
		WomenPersondays:       textOrNA(raw[models.FieldWomenPersondays]),
		CompletedWorks:        textOrNA(raw[models.FieldCompletedWorks]),
		OngoingWorks:          textOrNA(raw[models.FieldOngoingWorks]),
		PercentAgricultureExp: textOrNA(raw[models.FieldPercentAgricultureExp]),
		SCPersondays:          textOrNA(raw[models.FieldSCPersondays]),
		STPersondays:          textOrNA(raw[models.FieldSTPersondays]),
		Remarks:               textOrNA(raw[models.FieldRemarks]),
	}
}

// numberOrZero implements the persist policy for metric fields. JSON
// numbers arrive as float64; everything else goes through ParseFloat.
func numberOrZero(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// textOrEmpty renders a value as text, empty when absent.
func textOrEmpty(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// textOrNA implements the present policy: absent and empty values both
// surface as the Unavailable sentinel.
func textOrNA(v any) string {
	s := textOrEmpty(v)
	if s == "" {
		return models.Unavailable
	}
	return s
}
