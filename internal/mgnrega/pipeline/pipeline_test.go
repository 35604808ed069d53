package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
)

func raw(state, district string) models.RawRecord {
	r := models.RawRecord{}
	if state != "" {
		r[models.FieldState] = state
	}
	if district != "" {
		r[models.FieldDistrict] = district
	}
	return r
}

func TestFilterByState(t *testing.T) {
	records := []models.RawRecord{
		raw("MAHARASHTRA", "Pune"),
		raw("maharashtra", "Nagpur"),
		raw("KARNATAKA", "Mysuru"),
		raw("", "Orphan"),
		raw(" Maharashtra ", "Nashik"),
	}

	got := FilterByState(records, "Maharashtra")

	require.Len(t, got, 3)
	assert.Equal(t, "Pune", got[0][models.FieldDistrict])
	assert.Equal(t, "Nagpur", got[1][models.FieldDistrict])
	assert.Equal(t, "Nashik", got[2][models.FieldDistrict])
}

func TestFilterByStateDropsMissingStateField(t *testing.T) {
	records := []models.RawRecord{
		{models.FieldDistrict: "NoState"},
	}
	assert.Empty(t, FilterByState(records, "MAHARASHTRA"))
}

func TestDedupeByDistrictLastOccurrenceWins(t *testing.T) {
	records := []models.RawRecord{
		{models.FieldDistrict: "Pune", "Wages": "100"},
		{models.FieldDistrict: "Nagpur", "Wages": "200"},
		{models.FieldDistrict: "Pune", "Wages": "300"},
	}

	got := DedupeByDistrict(records)

	require.Len(t, got, 2)
	// Order follows first appearance, value is the last occurrence.
	assert.Equal(t, "Pune", got[0][models.FieldDistrict])
	assert.Equal(t, "300", got[0]["Wages"])
	assert.Equal(t, "Nagpur", got[1][models.FieldDistrict])
}

func TestDedupeByDistrictIsCaseInsensitive(t *testing.T) {
	records := []models.RawRecord{
		{models.FieldDistrict: "Pune", "Wages": "100"},
		{models.FieldDistrict: "PUNE", "Wages": "900"},
	}

	got := DedupeByDistrict(records)

	require.Len(t, got, 1)
	assert.Equal(t, "900", got[0]["Wages"])
}

func TestDedupeByDistrictSkipsRecordsWithoutDistrict(t *testing.T) {
	records := []models.RawRecord{
		{models.FieldState: "MAHARASHTRA"},
		{models.FieldDistrict: "Pune"},
	}
	assert.Len(t, DedupeByDistrict(records), 1)
}

func TestSortDistricts(t *testing.T) {
	list := []models.District{
		{State: "MAHARASHTRA", District: "Wardha"},
		{State: "MAHARASHTRA", District: "Akola"},
		{State: "MAHARASHTRA", District: "Pune"},
	}

	SortDistricts(list)

	assert.Equal(t, "Akola", list[0].District)
	assert.Equal(t, "Pune", list[1].District)
	assert.Equal(t, "Wardha", list[2].District)
}
