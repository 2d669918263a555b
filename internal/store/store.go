// Package store holds the in-memory postal code table.
package store

import "postalgeo-api/internal/models"

// Store maps postal codes to locations. It holds at most one location per code: a Put for an
// existing code replaces the earlier location (last write wins) while keeping the code's original
// position in iteration order.
//
// A Store is built once and then only read. It is not safe for concurrent writers.
type Store struct {
	byCode map[string]int
	locs   []models.Location
}

// New creates an empty store.
func New() *Store {
	return &Store{byCode: make(map[string]int)}
}

// Put inserts loc keyed by its postal code and reports whether an earlier location was replaced.
func (s *Store) Put(loc models.Location) (replaced bool) {
	if i, ok := s.byCode[loc.PostalCode]; ok {
		s.locs[i] = loc
		return true
	}
	s.byCode[loc.PostalCode] = len(s.locs)
	s.locs = append(s.locs, loc)
	return false
}

// FindByCode returns the location stored under code.
func (s *Store) FindByCode(code string) (models.Location, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return models.Location{}, false
	}
	return s.locs[i], true
}

// Len returns the number of distinct postal codes.
func (s *Store) Len() int {
	return len(s.locs)
}

// All returns a copy of every location in insertion order.
func (s *Store) All() []models.Location {
	out := make([]models.Location, len(s.locs))
	copy(out, s.locs)
	return out
}

// Codes returns every postal code in insertion order.
func (s *Store) Codes() []string {
	codes := make([]string, len(s.locs))
	for i, loc := range s.locs {
		codes[i] = loc.PostalCode
	}
	return codes
}

// Each calls fn for every location in insertion order until fn returns false.
func (s *Store) Each(fn func(models.Location) bool) {
	for _, loc := range s.locs {
		if !fn(loc) {
			return
		}
	}
}
