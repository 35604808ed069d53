package pipeline

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
)

// FilterByState retains the records whose state field matches state,
// compared case-insensitively. Records without a state field never
// match.
func FilterByState(records []models.RawRecord, state string) []models.RawRecord {
	want := strings.ToUpper(strings.TrimSpace(state))
	var out []models.RawRecord
	for _, r := range records {
		got, ok := stringValue(r[models.FieldState])
		if !ok {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(got)) == want {
			out = append(out, r)
		}
	}
	return out
}

// DedupeByDistrict collapses the input to one record per district,
// case-insensitively keyed. When a district repeats, the last
// occurrence wins; output order follows each district's first
// appearance.
func DedupeByDistrict(records []models.RawRecord) []models.RawRecord {
	type slot struct {
		index int
	}
	seen := make(map[string]slot)
	var out []models.RawRecord
	for _, r := range records {
		name, ok := stringValue(r[models.FieldDistrict])
		if !ok {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(name))
		if s, dup := seen[key]; dup {
			out[s.index] = r
			continue
		}
		seen[key] = slot{index: len(out)}
		out = append(out, r)
	}
	return out
}

// SortDistricts orders the district list ascending by district name
// using locale-aware collation, for deterministic presentation.
func SortDistricts(list []models.District) {
	c := collate.New(language.English, collate.IgnoreCase)
	c.Sort(districtsByName(list))
}

type districtsByName []models.District

func (d districtsByName) Len() int           { return len(d) }
func (d districtsByName) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }
func (d districtsByName) Bytes(i int) []byte { return []byte(d[i].District) }

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
