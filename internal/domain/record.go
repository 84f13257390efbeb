package domain

import "time"

// RawRecord is one day of punch-card events as found in the input.
// Time fields hold the raw tokens; an empty string means absent.
type RawRecord struct {
	Date       string
	NonWorking bool
	ClockIn    string
	BreakStart string
	BreakEnd   string
	ClockOut   string

	// Synthetic marks a placeholder date assigned because the input had
	// no date column.
	Synthetic bool
	// Source names the file the record came from.
	Source string
}

// HasBreak reports whether both break fields are present.
func (r RawRecord) HasBreak() bool {
	return r.BreakStart != "" && r.BreakEnd != ""
}

// ComputedRecord is a RawRecord with its worked hours resolved.
type ComputedRecord struct {
	RawRecord
	WorkedHours float64
	Outcome     Outcome
	// Reason carries the failure message when Outcome.IsFailure().
	Reason string
}

// DatedRecord is a ComputedRecord whose date parsed successfully.
type DatedRecord struct {
	ComputedRecord
	Day time.Time
}
