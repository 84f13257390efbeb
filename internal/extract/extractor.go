// Package extract turns OCR or hand-typed punch-card text into daily records.
package extract

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/timecard/internal/domain"
)

// EventsPerDay is the number of clock events that make up one daily record:
// clock-in, break-start, break-end, clock-out.
const EventsPerDay = 4

// DefaultMarkers are the literals that stand in for a day's four events when
// the day is not worked.
var DefaultMarkers = []string{"feriado", "férias", "ferias", "folga", "holiday"}

const (
	datePattern = `\d{1,2}/\d{1,2}/\d{4}`
	timePattern = `\d{1,2}:\d{2}`
)

// Slot is one position in the time-event stream. A slot filled by a
// non-working marker, or by padding after one, has an empty Value.
type Slot struct {
	Value  string
	Marker bool
}

// Scan holds the tokens found in a text, in order of appearance.
type Scan struct {
	Dates []string
	Slots []Slot
}

// Groups returns the number of complete four-slot groups in the stream.
func (s Scan) Groups() int {
	return len(s.Slots) / EventsPerDay
}

var tokenPattern = regexp.MustCompile(`(` + datePattern + `)|(` + timePattern + `)|(\pL+)`)

// Extractor groups date and time tokens into daily records.
type Extractor struct {
	markers map[string]bool
}

// NewExtractor builds an Extractor recognising the given single-word
// non-working markers, compared case-insensitively. With no markers,
// DefaultMarkers is used.
func NewExtractor(markers ...string) *Extractor {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	set := make(map[string]bool, len(markers))
	for _, m := range markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			set[m] = true
		}
	}
	return &Extractor{markers: set}
}

// IsMarker reports whether word is a non-working marker.
func (e *Extractor) IsMarker(word string) bool {
	return e.markers[strings.ToLower(strings.TrimSpace(word))]
}

// Scan tokenizes text into dates and time-event slots.
//
// A marker counts only where a day's times are expected, that is while some
// date still has no group of slots. There it closes the current group of
// four slots: on an empty group it produces four marker slots (a non-working
// day), otherwise it pads the group with absent slots. Elsewhere, as in a
// card title or legend, it is ignored like any other word.
func (e *Extractor) Scan(text string) Scan {
	var s Scan
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		switch {
		case m[1] != "":
			s.Dates = append(s.Dates, m[1])
		case m[2] != "":
			s.Slots = append(s.Slots, Slot{Value: m[2]})
		case m[3] != "" && e.IsMarker(m[3]):
			if s.Groups() >= len(s.Dates) {
				continue
			}
			pending := len(s.Slots) % EventsPerDay
			if pending == 0 {
				for i := 0; i < EventsPerDay; i++ {
					s.Slots = append(s.Slots, Slot{Marker: true})
				}
				continue
			}
			for i := pending; i < EventsPerDay; i++ {
				s.Slots = append(s.Slots, Slot{})
			}
		}
	}
	return s
}

// Extract returns one RawRecord per date that has a complete group of four
// slots at its position. Dates without a complete group are dropped.
func (e *Extractor) Extract(text string) []domain.RawRecord {
	return e.Records(e.Scan(text))
}

// Records pairs the i-th date with slots [4i, 4i+4).
func (e *Extractor) Records(s Scan) []domain.RawRecord {
	records := make([]domain.RawRecord, 0, len(s.Dates))
	for i, date := range s.Dates {
		end := EventsPerDay*i + EventsPerDay
		if len(s.Slots) < end {
			break
		}
		group := s.Slots[end-EventsPerDay : end]
		records = append(records, domain.RawRecord{
			Date:       date,
			NonWorking: allMarkers(group),
			ClockIn:    group[0].Value,
			BreakStart: group[1].Value,
			BreakEnd:   group[2].Value,
			ClockOut:   group[3].Value,
		})
	}
	return records
}

func allMarkers(group []Slot) bool {
	for _, s := range group {
		if !s.Marker {
			return false
		}
	}
	return true
}
