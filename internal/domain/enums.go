package domain

// BreakPolicy selects how the break-start/break-end pair affects worked hours.
type BreakPolicy string

const (
	// PolicySegments sums the two on-duty segments:
	// (break_start - clock_in) + (clock_out - break_end).
	PolicySegments BreakPolicy = "segments"
	// PolicyDeductBreak subtracts the break duration from the segment sum
	// a second time. Kept for parity with earlier reports.
	PolicyDeductBreak BreakPolicy = "deduct-break"
)

// ValidBreakPolicies is the canonical set of accepted policy strings.
var ValidBreakPolicies = map[string]bool{
	string(PolicySegments):    true,
	string(PolicyDeductBreak): true,
}

// Outcome classifies how a record's worked hours were obtained.
type Outcome string

const (
	OutcomeWorked       Outcome = "worked"
	OutcomeNonWorking   Outcome = "non_working"
	OutcomeMissingClock Outcome = "missing_clock"
	OutcomeInvalidTime  Outcome = "invalid_time"
	OutcomeNegative     Outcome = "negative_clamped"
)

// IsFailure reports whether the outcome represents unusable input rather
// than a legitimate zero (a holiday) or a computed value.
func (o Outcome) IsFailure() bool {
	switch o {
	case OutcomeMissingClock, OutcomeInvalidTime, OutcomeNegative:
		return true
	default:
		return false
	}
}

// SourceKind identifies how an input file is turned into records.
type SourceKind string

const (
	SourceText  SourceKind = "text"
	SourceImage SourceKind = "image"
	SourceTable SourceKind = "table"
)
