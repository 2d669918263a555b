// Package loader reads the postal code table into a store, repairing rows where it can and
// reporting every row it has to drop.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/models"
	"postalgeo-api/internal/store"
)

// Options tunes how the source is interpreted.
type Options struct {
	// HasHeader skips the first record of the source.
	HasHeader bool
	// StrictCoordinates drops rows whose latitude or longitude is outside the valid range.
	StrictCoordinates bool
}

// Summary counts what happened to the source records during a load.
type Summary struct {
	Rows     int `json:"rows"`
	Loaded   int `json:"loaded"`
	Repaired int `json:"repaired"`
	Skipped  int `json:"skipped"`
	Replaced int `json:"replaced"`
}

// Loader builds a store from a delimited postal code table.
type Loader struct {
	opts     Options
	reporter diagnostic.Reporter
}

// New creates a loader that sends row diagnostics to reporter. A nil reporter discards them.
func New(opts Options, reporter diagnostic.Reporter) *Loader {
	if reporter == nil {
		reporter = diagnostic.Discard
	}
	return &Loader{opts: opts, reporter: reporter}
}

// LoadFile opens path and loads it.
func (l *Loader) LoadFile(path string) (*store.Store, Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("loader: failed to open source: %w", err)
	}
	defer file.Close()

	return l.Load(file)
}

// Load reads every record from r. Bad rows are skipped and reported; only a failure to read the
// source itself is returned as an error, in which case no store is returned.
func (l *Loader) Load(r io.Reader) (*store.Store, Summary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row width is checked and repaired below

	st := store.New()
	var summary Summary

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, summary, fmt.Errorf("loader: failed to read source: %w", err)
			}
			summary.Rows++
			summary.Skipped++
			l.report(summary.Rows, "", diagnostic.ReasonMalformedCSV, parseErr.Error())
			continue
		}

		summary.Rows++
		if summary.Rows == 1 && l.opts.HasHeader {
			l.report(summary.Rows, "", diagnostic.ReasonHeaderSkipped, strings.Join(record, ","))
			continue
		}

		loc, ok := l.parseRecord(summary.Rows, record, &summary)
		if !ok {
			summary.Skipped++
			continue
		}

		summary.Loaded++
		if st.Put(loc) {
			summary.Replaced++
			l.reporter.Report(diagnostic.Diagnostic{
				Stage:  diagnostic.StageLoad,
				Row:    summary.Rows,
				ID:     loc.ID,
				Code:   loc.PostalCode,
				Reason: diagnostic.ReasonDuplicateCode,
				Detail: "replaced an earlier row with the same postal code",
			})
		}
	}

	return st, summary, nil
}

func (l *Loader) parseRecord(row int, record []string, summary *Summary) (models.Location, bool) {
	fields := record
	if len(fields) != expectedFields {
		repaired, err := Repair(fields)
		if err != nil {
			l.report(row, codeOf(fields), diagnostic.ReasonIrreparable,
				fmt.Sprintf("expected %d columns, got %d", expectedFields, len(fields)))
			return models.Location{}, false
		}
		l.report(row, codeOf(repaired), diagnostic.ReasonRepaired,
			fmt.Sprintf("merged %d city fragments", len(fields)-expectedFields+1))
		summary.Repaired++
		fields = repaired
	}

	code := fields[colPostalCode]

	lat, err := parseCoordinate(fields[colLatitude])
	if err != nil {
		l.report(row, code, diagnostic.ReasonBadLatitude, fmt.Sprintf("invalid latitude %q", fields[colLatitude]))
		return models.Location{}, false
	}

	lon, err := parseCoordinate(fields[colLongitude])
	if err != nil {
		l.report(row, code, diagnostic.ReasonBadLongitude, fmt.Sprintf("invalid longitude %q", fields[colLongitude]))
		return models.Location{}, false
	}

	if l.opts.StrictCoordinates {
		if lat < -90 || lat > 90 {
			l.report(row, code, diagnostic.ReasonOutOfRange, fmt.Sprintf("latitude %v outside [-90, 90]", lat))
			return models.Location{}, false
		}
		if lon < -180 || lon > 180 {
			l.report(row, code, diagnostic.ReasonOutOfRange, fmt.Sprintf("longitude %v outside [-180, 180]", lon))
			return models.Location{}, false
		}
	}

	return models.Location{
		ID:         fields[colID],
		Country:    fields[colCountry],
		PostalCode: code,
		City:       fields[colCity],
		Province:   fields[colProvince],
		Latitude:   lat,
		Longitude:  lon,
	}, true
}

func (l *Loader) report(row int, code string, reason diagnostic.Reason, detail string) {
	l.reporter.Report(diagnostic.Diagnostic{
		Stage:  diagnostic.StageLoad,
		Row:    row,
		Code:   code,
		Reason: reason,
		Detail: detail,
	})
}

// parseCoordinate parses a decimal degree value. NaN and infinities are rejected because no
// distance can be computed from them.
func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite coordinate %q", s)
	}
	return v, nil
}

func codeOf(fields []string) string {
	if len(fields) > colPostalCode {
		return fields[colPostalCode]
	}
	return ""
}
