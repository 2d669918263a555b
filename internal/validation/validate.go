// Package validation runs the advisory data-quality pass over loaded postal codes. It reports
// findings and never changes or removes a record.
package validation

import (
	"fmt"

	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/models"
)

// CodeLength is the expected length of a forward sortation area code.
const CodeLength = 3

// Source is anything that can enumerate locations.
type Source interface {
	Each(fn func(models.Location) bool)
}

// Result summarizes a validation run.
type Result struct {
	Valid   bool `json:"valid"`
	Checked int  `json:"checked"`
	Invalid int  `json:"invalid"`
}

// Validate checks every location in src and reports one diagnostic per failed check.
func Validate(src Source, reporter diagnostic.Reporter) Result {
	if reporter == nil {
		reporter = diagnostic.Discard
	}

	res := Result{Valid: true}
	src.Each(func(loc models.Location) bool {
		res.Checked++
		if !check(loc, reporter) {
			res.Invalid++
			res.Valid = false
		}
		return true
	})
	return res
}

func check(loc models.Location, reporter diagnostic.Reporter) bool {
	valid := true
	fail := func(reason diagnostic.Reason, detail string) {
		valid = false
		reporter.Report(diagnostic.Diagnostic{
			Stage:  diagnostic.StageValidate,
			ID:     loc.ID,
			Code:   loc.PostalCode,
			Reason: reason,
			Detail: detail,
		})
	}

	if n := len([]rune(loc.PostalCode)); n != CodeLength {
		fail(diagnostic.ReasonCodeLength, fmt.Sprintf("postal code has %d characters, want %d", n, CodeLength))
	}
	if loc.City == "" {
		fail(diagnostic.ReasonEmptyCity, "city is empty")
	}
	if loc.Province == "" {
		fail(diagnostic.ReasonEmptyProvince, "province is empty")
	}
	if !(loc.Latitude >= -90 && loc.Latitude <= 90) {
		fail(diagnostic.ReasonLatitudeRange, fmt.Sprintf("latitude %v outside [-90, 90]", loc.Latitude))
	}
	if !(loc.Longitude >= -180 && loc.Longitude <= 180) {
		fail(diagnostic.ReasonLongitudeRange, fmt.Sprintf("longitude %v outside [-180, 180]", loc.Longitude))
	}
	return valid
}
