package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
)

// Bucket is the total of all records whose date falls in one calendar
// period. Key sorts chronologically ("2025-W19", "2025-05").
type Bucket struct {
	Key     string
	Start   time.Time
	Total   float64
	Records int
}

// Summary is the aggregate view of one record set. It is derived fresh on
// every call to Aggregate and shares no state with its input.
type Summary struct {
	// Records are the records with a valid date, sorted by date ascending.
	Records []domain.DatedRecord
	// Skipped are the records excluded because their date did not parse.
	Skipped []domain.ComputedRecord

	Daily        Stats
	Weekly       []Bucket
	WeeklyStats  Stats
	Monthly      []Bucket
	MonthlyStats Stats
}

// Period returns the first and last record dates. ok is false when there are
// no dated records.
func (s Summary) Period() (first, last time.Time, ok bool) {
	if len(s.Records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.Records[0].Day, s.Records[len(s.Records)-1].Day, true
}

// WeekKey returns the ISO week key of d, e.g. "2025-W07".
func WeekKey(d time.Time) string {
	y, w := d.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

// MonthKey returns the year-month key of d, e.g. "2025-05".
func MonthKey(d time.Time) string {
	return d.Format("2006-01")
}

// weekStart returns the Monday of d's ISO week.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return time.Date(d.Year(), d.Month(), d.Day()-offset, 0, 0, 0, 0, d.Location())
}

func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// Aggregate excludes records with unparseable dates, sorts the rest by date
// (stable), and computes daily statistics plus weekly and monthly buckets.
// Weekly and monthly statistics are taken across bucket totals.
func Aggregate(records []domain.ComputedRecord) Summary {
	var s Summary
	dated := make([]domain.DatedRecord, 0, len(records))
	for _, r := range records {
		d, err := domain.ParseDate(r.Date)
		if err != nil {
			s.Skipped = append(s.Skipped, r)
			continue
		}
		dated = append(dated, domain.DatedRecord{ComputedRecord: r, Day: d})
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Day.Before(dated[j].Day)
	})
	s.Records = dated

	daily := make([]float64, len(dated))
	for i, r := range dated {
		daily[i] = r.WorkedHours
	}
	s.Daily = Describe(daily)

	s.Weekly = bucketize(dated, WeekKey, weekStart)
	s.WeeklyStats = Describe(totals(s.Weekly))
	s.Monthly = bucketize(dated, MonthKey, monthStart)
	s.MonthlyStats = Describe(totals(s.Monthly))
	return s
}

func bucketize(records []domain.DatedRecord, key func(time.Time) string, start func(time.Time) time.Time) []Bucket {
	index := make(map[string]int)
	cents := make(map[string]int64)
	var buckets []Bucket
	for _, r := range records {
		k := key(r.Day)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, Bucket{Key: k, Start: start(r.Day)})
		}
		buckets[i].Records++
		cents[k] += toCents(r.WorkedHours)
	}
	for i := range buckets {
		buckets[i].Total = fromCents(cents[buckets[i].Key])
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

func totals(buckets []Bucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b.Total
	}
	return out
}
