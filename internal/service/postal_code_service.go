package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/geo"
	"postalgeo-api/internal/models"
	"postalgeo-api/internal/validation"

	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is matched by every error reporting an unknown postal code.
	ErrNotFound = errors.New("service: postal code not found")
	// ErrInvalidRadius is returned for negative or NaN search radii.
	ErrInvalidRadius = errors.New("service: radius must be a non-negative number")
)

// NotFoundError lists the postal codes a query referenced that are not loaded.
type NotFoundError struct {
	Codes []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("service: postal code not found: %s", strings.Join(e.Codes, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// PostalCodeRepository is the read side of the postal code store.
type PostalCodeRepository interface {
	FindByCode(code string) (models.Location, bool)
	Each(fn func(models.Location) bool)
	Len() int
}

// CandidateIndex narrows the locations a radius query has to measure. ok is false when the index
// cannot answer and every location must be scanned.
type CandidateIndex interface {
	Candidates(lat, lon, radiusKm float64) (candidates []models.Location, ok bool)
}

// Option configures a PostalCodeService.
type Option func(*PostalCodeService)

// WithIndex makes Nearby consult ix before falling back to a full scan.
func WithIndex(ix CandidateIndex) Option {
	return func(s *PostalCodeService) { s.index = ix }
}

// WithLogger sets the logger used for query and validation summaries.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *PostalCodeService) { s.logger = logger }
}

// PostalCodeService answers distance and radius queries over a loaded store. It keeps no state
// between calls and is safe for concurrent use as long as the repository is not being written.
type PostalCodeService struct {
	repo   PostalCodeRepository
	index  CandidateIndex
	logger zerolog.Logger
}

// NewPostalCodeService creates a new postal code service
func NewPostalCodeService(repo PostalCodeRepository, opts ...Option) *PostalCodeService {
	s := &PostalCodeService{repo: repo, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Count returns the number of loaded postal codes.
func (s *PostalCodeService) Count() int {
	return s.repo.Len()
}

// DistanceBetween returns the great-circle distance in kilometers between two postal codes.
// If either code is unknown the error is a *NotFoundError naming the missing codes.
func (s *PostalCodeService) DistanceBetween(from, to string) (float64, error) {
	a, okA := s.repo.FindByCode(from)
	b, okB := s.repo.FindByCode(to)

	var missing []string
	if !okA {
		missing = append(missing, from)
	}
	if !okB && to != from {
		missing = append(missing, to)
	}
	if len(missing) > 0 {
		return 0, &NotFoundError{Codes: missing}
	}

	return geo.Haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude), nil
}

// Nearby returns every location within radiusKm of code, nearest first. The reference location
// itself is never included. The boundary is inclusive.
func (s *PostalCodeService) Nearby(code string, radiusKm float64) ([]models.Neighbor, error) {
	if radiusKm < 0 || math.IsNaN(radiusKm) {
		return nil, ErrInvalidRadius
	}

	ref, ok := s.repo.FindByCode(code)
	if !ok {
		return nil, &NotFoundError{Codes: []string{code}}
	}

	neighbors := []models.Neighbor{}
	consider := func(loc models.Location) bool {
		if loc.PostalCode == ref.PostalCode {
			return true
		}
		d := geo.Haversine(ref.Latitude, ref.Longitude, loc.Latitude, loc.Longitude)
		if d <= radiusKm {
			neighbors = append(neighbors, models.Neighbor{Location: loc, DistanceKm: d})
		}
		return true
	}

	indexed := false
	if s.index != nil {
		if candidates, ok := s.index.Candidates(ref.Latitude, ref.Longitude, radiusKm); ok {
			for _, loc := range candidates {
				consider(loc)
			}
			indexed = true
		}
	}
	if !indexed {
		s.repo.Each(consider)
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].DistanceKm != neighbors[j].DistanceKm {
			return neighbors[i].DistanceKm < neighbors[j].DistanceKm
		}
		return neighbors[i].PostalCode < neighbors[j].PostalCode
	})

	s.logger.Debug().
		Str("postal_code", code).
		Float64("radius_km", radiusKm).
		Int("matches", len(neighbors)).
		Bool("indexed", indexed).
		Msg("nearby query")

	return neighbors, nil
}

// Validate runs the advisory validation pass over every loaded location.
func (s *PostalCodeService) Validate(reporter diagnostic.Reporter) validation.Result {
	res := validation.Validate(s.repo, reporter)
	if res.Valid {
		s.logger.Info().Int("checked", res.Checked).Msg("all postal codes passed validation")
	} else {
		s.logger.Warn().Int("checked", res.Checked).Int("invalid", res.Invalid).Msg("some postal codes failed validation")
	}
	return res
}
