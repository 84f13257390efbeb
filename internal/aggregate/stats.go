// Package aggregate buckets computed records by week and month and
// derives descriptive statistics.
package aggregate

import (
	"math"
)

// Stats describes a series of hour values.
type Stats struct {
	// Count is the number of values in the series, zero values included.
	Count int
	// Positive is the number of values greater than zero. For the daily
	// series this is the number of days worked.
	Positive int
	Total    float64
	Mean     float64
	// Mode is the most frequent value; ties go to the smallest value.
	Mode float64
	// StdDev is the sample standard deviation (N-1), zero for fewer than
	// two values.
	StdDev float64
}

// Describe computes Stats over values. Values are treated at a resolution
// of hundredths, which makes Total exact for 2-decimal inputs.
func Describe(values []float64) Stats {
	s := Stats{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	var cents int64
	freq := make(map[int64]int, len(values))
	for _, v := range values {
		c := toCents(v)
		cents += c
		freq[c]++
		if c > 0 {
			s.Positive++
		}
	}
	s.Total = fromCents(cents)
	s.Mean = s.Total / float64(len(values))
	s.Mode = fromCents(modeOf(freq))

	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := v - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(len(values)-1))
	}
	return s
}

func modeOf(freq map[int64]int) int64 {
	var best int64
	bestN := 0
	for v, n := range freq {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}
