// Package diagnostic carries data-quality findings from the loader and the validator to whoever
// wants to observe them. Reporting a diagnostic never changes what the reporter's caller does next.
package diagnostic

import (
	"sync"

	"github.com/rs/zerolog"
)

// Stage names the pass that produced a diagnostic.
type Stage string

const (
	StageLoad     Stage = "load"
	StageValidate Stage = "validate"
)

// Reason is a machine-readable diagnostic kind.
type Reason string

// Loader reasons.
const (
	ReasonRepaired      Reason = "repaired"
	ReasonIrreparable   Reason = "irreparable"
	ReasonBadLatitude   Reason = "bad_latitude"
	ReasonBadLongitude  Reason = "bad_longitude"
	ReasonOutOfRange    Reason = "coordinate_out_of_range"
	ReasonMalformedCSV  Reason = "malformed_csv"
	ReasonDuplicateCode Reason = "duplicate_code"
	ReasonHeaderSkipped Reason = "header_skipped"
)

// Validation reasons.
const (
	ReasonCodeLength     Reason = "code_length"
	ReasonEmptyCity      Reason = "empty_city"
	ReasonEmptyProvince  Reason = "empty_province"
	ReasonLatitudeRange  Reason = "latitude_range"
	ReasonLongitudeRange Reason = "longitude_range"
)

// Diagnostic is a single finding. Row is the 1-based source record number for load findings
// and zero for validation findings.
type Diagnostic struct {
	Stage  Stage  `json:"stage"`
	Row    int    `json:"row,omitempty"`
	ID     string `json:"id,omitempty"`
	Code   string `json:"code,omitempty"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Skipped reports whether the diagnostic describes a row that was dropped from the load.
func (d Diagnostic) Skipped() bool {
	switch d.Reason {
	case ReasonIrreparable, ReasonBadLatitude, ReasonBadLongitude, ReasonOutOfRange, ReasonMalformedCSV:
		return true
	}
	return false
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(Diagnostic)
}

// Discard drops every diagnostic.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// LogReporter writes each diagnostic as one structured log event.
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates a reporter that logs to logger.
func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Report implements Reporter.
func (r *LogReporter) Report(d Diagnostic) {
	ev := r.logger.Warn()
	if !d.Skipped() && d.Stage == StageLoad {
		ev = r.logger.Debug()
	}
	ev = ev.Str("stage", string(d.Stage)).Str("reason", string(d.Reason))
	if d.Row > 0 {
		ev = ev.Int("row", d.Row)
	}
	if d.ID != "" {
		ev = ev.Str("id", d.ID)
	}
	if d.Code != "" {
		ev = ev.Str("postal_code", d.Code)
	}
	ev.Msg(d.Detail)
}

// Collector keeps every diagnostic in memory.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Report implements Reporter.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// WithReason returns the collected diagnostics that carry reason.
func (c *Collector) WithReason(reason Reason) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics() {
		if d.Reason == reason {
			out = append(out, d)
		}
	}
	return out
}

// Multi fans a diagnostic out to several reporters.
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

type multi []Reporter

func (m multi) Report(d Diagnostic) {
	for _, r := range m {
		r.Report(d)
	}
}
