// Package hours computes net worked hours for a single daily record.
package hours

import (
	"fmt"
	"math"

	"github.com/alexanderramin/timecard/internal/domain"
)

// Result is the outcome of computing one record. Hours is always
// non-negative and rounded to two decimals; Err is set when Outcome is a
// failure so callers can tell a holiday from unusable input.
type Result struct {
	Hours   float64
	Outcome domain.Outcome
	Err     error
}

// Calculator applies a fixed break policy.
type Calculator struct {
	policy domain.BreakPolicy
}

// NewCalculator returns a Calculator for policy. Unknown policies fall back
// to PolicySegments.
func NewCalculator(policy domain.BreakPolicy) *Calculator {
	if !domain.ValidBreakPolicies[string(policy)] {
		policy = domain.PolicySegments
	}
	return &Calculator{policy: policy}
}

// Policy returns the break policy in effect.
func (c *Calculator) Policy() domain.BreakPolicy {
	return c.policy
}

// Compute resolves the worked hours of r. It never fails: every problem is
// reported through the Result and yields zero hours.
func (c *Calculator) Compute(r domain.RawRecord) Result {
	if r.NonWorking {
		return Result{Outcome: domain.OutcomeNonWorking}
	}
	if r.ClockIn == "" || r.ClockOut == "" {
		return failure(domain.OutcomeMissingClock, domain.ErrMissingClock)
	}

	in, err := domain.ParseTimeOfDay(r.ClockIn)
	if err != nil {
		return failure(domain.OutcomeInvalidTime, fmt.Errorf("clock-in: %w", err))
	}
	out, err := domain.ParseTimeOfDay(r.ClockOut)
	if err != nil {
		return failure(domain.OutcomeInvalidTime, fmt.Errorf("clock-out: %w", err))
	}

	var h float64
	if r.HasBreak() {
		start, err := domain.ParseTimeOfDay(r.BreakStart)
		if err != nil {
			return failure(domain.OutcomeInvalidTime, fmt.Errorf("break-start: %w", err))
		}
		end, err := domain.ParseTimeOfDay(r.BreakEnd)
		if err != nil {
			return failure(domain.OutcomeInvalidTime, fmt.Errorf("break-end: %w", err))
		}
		h = in.HoursUntil(start) + end.HoursUntil(out)
		if c.policy == domain.PolicyDeductBreak {
			h -= start.HoursUntil(end)
		}
	} else {
		h = in.HoursUntil(out)
	}

	h = Round2(h)
	if h < 0 {
		return failure(domain.OutcomeNegative,
			fmt.Errorf("%w: %.2fh", domain.ErrNegativeDuration, h))
	}
	return Result{Hours: h, Outcome: domain.OutcomeWorked}
}

// Apply computes every record and returns a new slice; the input is not
// modified.
func (c *Calculator) Apply(records []domain.RawRecord) []domain.ComputedRecord {
	out := make([]domain.ComputedRecord, 0, len(records))
	for _, r := range records {
		res := c.Compute(r)
		cr := domain.ComputedRecord{
			RawRecord:   r,
			WorkedHours: res.Hours,
			Outcome:     res.Outcome,
		}
		if res.Err != nil {
			cr.Reason = res.Err.Error()
		}
		out = append(out, cr)
	}
	return out
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

func failure(o domain.Outcome, err error) Result {
	return Result{Outcome: o, Err: err}
}
