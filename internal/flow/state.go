// Package flow drives the destination → package → details selection form.
//
// State is a plain value. Update folds an Event into it and returns the
// Commands the host must execute; Render derives what the form shows. Neither
// performs I/O, so any host (terminal UI, CLI, tests) can drive the same flow.
package flow

import (
	"strings"
	"time"

	"github.com/arunpandian9159/Booking-agent/internal/backend"
	"github.com/arunpandian9159/Booking-agent/internal/offer"
)

// MinDate is the earliest bookable travel date.
const MinDate = "2024-01-01"

const dateLayout = "2006-01-02"

// Stage is the progressive-disclosure step the form is in.
type Stage int

const (
	StageIdle Stage = iota
	StageDestinationChosen
	StagePackageChosen
	StageDetailsValid
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageDestinationChosen:
		return "destination_chosen"
	case StagePackageChosen:
		return "package_chosen"
	case StageDetailsValid:
		return "details_valid"
	default:
		return "unknown"
	}
}

// ResultStatus describes the result area.
type ResultStatus int

const (
	ResultNone ResultStatus = iota
	ResultInProgress
	ResultReady
	ResultFailed
)

// Field names a booking input that failed validation.
type Field string

const (
	FieldPackage Field = "package"
	FieldName    Field = "name"
	FieldDate    Field = "date"
)

// State is the complete form state.
type State struct {
	Destinations       []string
	DestinationsLoaded bool
	Destination        string

	Packages       []backend.Package
	PackagesLoaded bool
	Package        string

	Name string
	Date string

	Result ResultStatus
	Tree   offer.DisplayTree
	Err    string

	// Invalid is set by a rejected submit and refreshed as inputs change.
	Invalid []Field

	seq        uint64
	packageSeq uint64
	bookSeq    uint64
}

// Stage derives the current stage from the selections.
func (s State) Stage() Stage {
	switch {
	case s.Destination == "":
		return StageIdle
	case s.Package == "":
		return StageDestinationChosen
	case len(validate(s)) == 0:
		return StageDetailsValid
	default:
		return StagePackageChosen
	}
}

// FindPackage looks up a loaded package by id, then by case-insensitive name.
func (s State) FindPackage(ref string) (backend.Package, bool) {
	for _, p := range s.Packages {
		if p.ID == ref {
			return p, true
		}
	}
	for _, p := range s.Packages {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return backend.Package{}, false
}

// ValidDate reports whether d is a YYYY-MM-DD date not before MinDate.
func ValidDate(d string) bool {
	t, err := time.Parse(dateLayout, d)
	if err != nil {
		return false
	}
	minDate, _ := time.Parse(dateLayout, MinDate)
	return !t.Before(minDate)
}

func validate(s State) []Field {
	var invalid []Field
	if s.Package == "" {
		invalid = append(invalid, FieldPackage)
	}
	if strings.TrimSpace(s.Name) == "" {
		invalid = append(invalid, FieldName)
	}
	if !ValidDate(strings.TrimSpace(s.Date)) {
		invalid = append(invalid, FieldDate)
	}
	return invalid
}

func hasPackage(pkgs []backend.Package, id string) bool {
	for _, p := range pkgs {
		if p.ID == id {
			return true
		}
	}
	return false
}
