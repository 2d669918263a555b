package validation

import (
	"testing"

	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/models"
	"postalgeo-api/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	good := models.Location{ID: "1", PostalCode: "E2E", City: "Rothesay", Province: "NB", Latitude: 45.4165, Longitude: -65.9913}

	tests := []struct {
		name     string
		mutate   func(*models.Location)
		expected []diagnostic.Reason
	}{
		{
			name:   "valid record",
			mutate: func(*models.Location) {},
		},
		{
			name:     "code too long",
			mutate:   func(l *models.Location) { l.PostalCode = "E2E1A" },
			expected: []diagnostic.Reason{diagnostic.ReasonCodeLength},
		},
		{
			name:     "empty city and province",
			mutate:   func(l *models.Location) { l.City, l.Province = "", "" },
			expected: []diagnostic.Reason{diagnostic.ReasonEmptyCity, diagnostic.ReasonEmptyProvince},
		},
		{
			name:     "latitude out of range",
			mutate:   func(l *models.Location) { l.Latitude = -91 },
			expected: []diagnostic.Reason{diagnostic.ReasonLatitudeRange},
		},
		{
			name:     "longitude out of range",
			mutate:   func(l *models.Location) { l.Longitude = 180.5 },
			expected: []diagnostic.Reason{diagnostic.ReasonLongitudeRange},
		},
		{
			name:   "boundaries are valid",
			mutate: func(l *models.Location) { l.Latitude, l.Longitude = 90, -180 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := good
			tt.mutate(&loc)

			st := store.New()
			st.Put(loc)
			collector := &diagnostic.Collector{}

			res := Validate(st, collector)

			assert.Equal(t, 1, res.Checked)
			assert.Equal(t, len(tt.expected) == 0, res.Valid)

			var reasons []diagnostic.Reason
			for _, d := range collector.Diagnostics() {
				assert.Equal(t, diagnostic.StageValidate, d.Stage)
				assert.Equal(t, loc.PostalCode, d.Code)
				reasons = append(reasons, d.Reason)
			}
			assert.Equal(t, tt.expected, reasons)
		})
	}
}

func TestValidate_NeverMutatesStore(t *testing.T) {
	st := store.New()
	st.Put(models.Location{ID: "1", PostalCode: "TOOLONG", City: "", Latitude: 100, Longitude: 200})
	st.Put(models.Location{ID: "2", PostalCode: "A0A", City: "Alpha", Province: "NL", Latitude: 47.5, Longitude: -52.7})
	before := st.All()

	res := Validate(st, nil)

	assert.False(t, res.Valid)
	assert.Equal(t, 2, res.Checked)
	assert.Equal(t, 1, res.Invalid)
	assert.Equal(t, before, st.All())
}
