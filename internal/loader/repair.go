package loader

import (
	"errors"
	"strings"
)

// Column layout of a canonical postal code row.
const (
	colID = iota
	colCountry
	colPostalCode
	colCity
	colProvince
	colLatitude
	colLongitude

	expectedFields
)

// ErrIrreparable is returned by Repair for rows that cannot be rebuilt into the canonical layout.
var ErrIrreparable = errors.New("loader: row cannot be repaired")

// Repair rebuilds a row whose column count is wrong because the city column contained unescaped
// commas. Rows that already have seven fields are returned unchanged.
//
// Only the city column is assumed to split. The id, country, code, province, latitude and
// longitude columns are taken to be intact, so a row corrupted anywhere else is rebuilt with
// the wrong boundaries and will usually fail numeric parsing later. Rows with fewer than seven
// fields are never guessed at.
func Repair(fields []string) ([]string, error) {
	if len(fields) == expectedFields {
		return fields, nil
	}
	if len(fields) < expectedFields {
		return nil, ErrIrreparable
	}

	tail := len(fields) - 3
	fragments := make([]string, 0, tail-colCity)
	for _, f := range fields[colCity:tail] {
		fragments = append(fragments, strings.TrimSpace(f))
	}

	return []string{
		fields[colID],
		fields[colCountry],
		fields[colPostalCode],
		strings.Join(fragments, ", "),
		strings.TrimSpace(fields[tail]),
		fields[tail+1],
		fields[tail+2],
	}, nil
}
