package service

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/geo"
	"postalgeo-api/internal/models"
	"postalgeo-api/internal/spatial"
	"postalgeo-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostalCodeRepository is a mock implementation of the PostalCodeRepository interface
type MockPostalCodeRepository struct {
	mock.Mock
}

// FindByCode implements PostalCodeRepository.
func (m *MockPostalCodeRepository) FindByCode(code string) (models.Location, bool) {
	args := m.Called(code)
	return args.Get(0).(models.Location), args.Bool(1)
}

// Each implements PostalCodeRepository.
func (m *MockPostalCodeRepository) Each(fn func(models.Location) bool) {
	m.Called(fn)
}

// Len implements PostalCodeRepository.
func (m *MockPostalCodeRepository) Len() int {
	return m.Called().Int(0)
}

var (
	e2e = models.Location{ID: "1", Country: "CA", PostalCode: "E2E", City: "Rothesay, Quispamsis", Province: "NB", Latitude: 45.4165, Longitude: -65.9913}
	e2h = models.Location{ID: "9", Country: "CA", PostalCode: "E2H", City: "Saint John East", Province: "NB", Latitude: 45.2980, Longitude: -66.0190}
	e2k = models.Location{ID: "11", Country: "CA", PostalCode: "E2K", City: "Saint John Northwest", Province: "NB", Latitude: 45.2830, Longitude: -66.0800}
	h1e = models.Location{ID: "2", Country: "CA", PostalCode: "H1E", City: "Montreal East", Province: "QC", Latitude: 45.6320, Longitude: -73.5703}
	j7c = models.Location{ID: "3", Country: "CA", PostalCode: "J7C", City: "Blainville", Province: "QC", Latitude: 45.6780, Longitude: -73.8820}
	y1a = models.Location{ID: "5", Country: "CA", PostalCode: "Y1A", City: "Whitehorse", Province: "YT", Latitude: 60.7210, Longitude: -135.0568}
)

func newTestStore(locs ...models.Location) *store.Store {
	st := store.New()
	for _, loc := range locs {
		st.Put(loc)
	}
	return st
}

func TestPostalCodeService_DistanceBetween(t *testing.T) {
	tests := []struct {
		name        string
		from, to    string
		fromLoc     models.Location
		fromFound   bool
		toLoc       models.Location
		toFound     bool
		expected    float64
		missing     []string
		expectError bool
	}{
		{
			name:      "both codes found",
			from:      "H1E",
			to:        "J7C",
			fromLoc:   h1e,
			fromFound: true,
			toLoc:     j7c,
			toFound:   true,
			expected:  geo.Haversine(h1e.Latitude, h1e.Longitude, j7c.Latitude, j7c.Longitude),
		},
		{
			name:      "same code",
			from:      "H1E",
			to:        "H1E",
			fromLoc:   h1e,
			fromFound: true,
			toLoc:     h1e,
			toFound:   true,
			expected:  0,
		},
		{
			name:        "unknown origin",
			from:        "XXX",
			to:          "J7C",
			toLoc:       j7c,
			toFound:     true,
			missing:     []string{"XXX"},
			expectError: true,
		},
		{
			name:        "unknown destination",
			from:        "H1E",
			to:          "YYY",
			fromLoc:     h1e,
			fromFound:   true,
			missing:     []string{"YYY"},
			expectError: true,
		},
		{
			name:        "both unknown",
			from:        "XXX",
			to:          "YYY",
			missing:     []string{"XXX", "YYY"},
			expectError: true,
		},
		{
			name:        "same unknown code reported once",
			from:        "XXX",
			to:          "XXX",
			missing:     []string{"XXX"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockPostalCodeRepository)
			mockRepo.On("FindByCode", tt.from).Return(tt.fromLoc, tt.fromFound)
			mockRepo.On("FindByCode", tt.to).Return(tt.toLoc, tt.toFound)
			service := NewPostalCodeService(mockRepo)

			// Execute
			result, err := service.DistanceBetween(tt.from, tt.to)

			// Assert
			if tt.expectError {
				assert.ErrorIs(t, err, ErrNotFound)
				var notFound *NotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, tt.missing, notFound.Codes)
				assert.Zero(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPostalCodeService_DistanceBetweenIsSymmetric(t *testing.T) {
	service := NewPostalCodeService(newTestStore(e2e, h1e, j7c, y1a))

	ab, err := service.DistanceBetween("E2E", "Y1A")
	require.NoError(t, err)
	ba, err := service.DistanceBetween("Y1A", "E2E")
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	assert.Greater(t, ab, 4000.0)
}

func TestPostalCodeService_Nearby(t *testing.T) {
	service := NewPostalCodeService(newTestStore(e2e, e2h, e2k, h1e, j7c, y1a))

	t.Run("unknown reference", func(t *testing.T) {
		result, err := service.Nearby("XYZ", 100)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, result)
	})

	t.Run("invalid radius", func(t *testing.T) {
		_, err := service.Nearby("E2E", -1)
		assert.ErrorIs(t, err, ErrInvalidRadius)

		_, err = service.Nearby("E2E", math.NaN())
		assert.ErrorIs(t, err, ErrInvalidRadius)
	})

	t.Run("zero radius excludes reference", func(t *testing.T) {
		result, err := service.Nearby("E2E", 0)
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("small radius finds the Saint John codes nearest first", func(t *testing.T) {
		result, err := service.Nearby("E2E", 25)
		require.NoError(t, err)
		require.Len(t, result, 2)

		assert.Equal(t, "E2H", result[0].PostalCode)
		assert.Equal(t, "E2K", result[1].PostalCode)
		assert.LessOrEqual(t, result[0].DistanceKm, result[1].DistanceKm)
		for _, n := range result {
			assert.Equal(t, geo.Haversine(e2e.Latitude, e2e.Longitude, n.Latitude, n.Longitude), n.DistanceKm)
		}
	})

	t.Run("huge radius covers everything but the reference", func(t *testing.T) {
		result, err := service.Nearby("E2E", 20100)
		require.NoError(t, err)
		assert.Len(t, result, 5)
		for _, n := range result {
			assert.NotEqual(t, "E2E", n.PostalCode)
		}
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		exact := geo.Haversine(e2e.Latitude, e2e.Longitude, e2k.Latitude, e2k.Longitude)
		result, err := service.Nearby("E2E", exact)
		require.NoError(t, err)
		require.NotEmpty(t, result)
		assert.Equal(t, "E2K", result[len(result)-1].PostalCode)
	})
}

func TestPostalCodeService_NearbyDoesNotShareState(t *testing.T) {
	service := NewPostalCodeService(newTestStore(e2e, e2h, e2k))

	first, err := service.Nearby("E2E", 50)
	require.NoError(t, err)
	second, err := service.Nearby("E2H", 50)
	require.NoError(t, err)

	// distances in the first result are not rewritten by the second query
	for _, n := range first {
		assert.Equal(t, geo.Haversine(e2e.Latitude, e2e.Longitude, n.Latitude, n.Longitude), n.DistanceKm)
	}
	for _, n := range second {
		assert.Equal(t, geo.Haversine(e2h.Latitude, e2h.Longitude, n.Latitude, n.Longitude), n.DistanceKm)
	}
}

func randomStore(n int, seed int64) *store.Store {
	rng := rand.New(rand.NewSource(seed))
	st := store.New()
	for i := 0; i < n; i++ {
		st.Put(models.Location{
			ID:         fmt.Sprint(i),
			PostalCode: fmt.Sprintf("C%03d", i),
			City:       "Somewhere",
			Province:   "ON",
			Latitude:   43 + rng.Float64()*10,
			Longitude:  -95 + rng.Float64()*20,
		})
	}
	return st
}

func codesOf(neighbors []models.Neighbor) map[string]bool {
	set := make(map[string]bool, len(neighbors))
	for _, n := range neighbors {
		set[n.PostalCode] = true
	}
	return set
}

func TestPostalCodeService_NearbyIsMonotonic(t *testing.T) {
	st := randomStore(400, 11)
	service := NewPostalCodeService(st)
	radii := []float64{0, 1, 10, 50, 100, 250, 1000, 5000}

	for _, code := range st.Codes()[:20] {
		var previous map[string]bool
		for _, r := range radii {
			result, err := service.Nearby(code, r)
			require.NoError(t, err)

			current := codesOf(result)
			for c := range previous {
				assert.True(t, current[c], "%s within smaller radius but not within %v of %s", c, r, code)
			}
			previous = current
		}
	}
}

func TestPostalCodeService_IndexedMatchesLinearScan(t *testing.T) {
	st := randomStore(600, 3)
	linear := NewPostalCodeService(st)
	indexed := NewPostalCodeService(st, WithIndex(spatial.NewIndex(st.All())))

	for _, code := range st.Codes()[:40] {
		for _, r := range []float64{0, 15, 80, 300, 2000} {
			want, err := linear.Nearby(code, r)
			require.NoError(t, err)
			got, err := indexed.Nearby(code, r)
			require.NoError(t, err)
			assert.Equal(t, want, got, "code %s radius %v", code, r)
		}
	}
}

func TestPostalCodeService_IndexFallsBackNearPoles(t *testing.T) {
	north := models.Location{PostalCode: "N0N", City: "Alert", Province: "NU", Latitude: 89.9, Longitude: 10}
	across := models.Location{PostalCode: "N0S", City: "Across", Province: "NU", Latitude: 89.9, Longitude: -170}
	st := newTestStore(north, across)
	service := NewPostalCodeService(st, WithIndex(spatial.NewIndex(st.All())))

	result, err := service.Nearby("N0N", 50)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "N0S", result[0].PostalCode)
}

func TestPostalCodeService_Validate(t *testing.T) {
	broken := models.Location{ID: "99", PostalCode: "TOOLONG", City: "", Province: "QC", Latitude: 45, Longitude: -73}
	service := NewPostalCodeService(newTestStore(e2e, broken))

	collector := &diagnostic.Collector{}
	res := service.Validate(collector)

	assert.False(t, res.Valid)
	assert.Equal(t, 2, res.Checked)
	assert.Equal(t, 1, res.Invalid)
	assert.Len(t, collector.WithReason(diagnostic.ReasonCodeLength), 1)
	assert.Len(t, collector.WithReason(diagnostic.ReasonEmptyCity), 1)
	assert.Equal(t, 2, service.Count())
}
