// Package slots suggests reservation times for a date and party size.  A
// live generator is consulted when one is configured; every failure ends in
// the fixed fallback list.
package slots

import "time"

// fallback is returned whenever live generation is absent or fails.
var fallback = []string{"19:00", "19:30", "20:00", "21:00", "21:30", "22:00"}

// Fallback returns a fresh copy of the deterministic slot list.
func Fallback() []string {
	out := make([]string, len(fallback))
	copy(out, fallback)
	return out
}

// Peak window, when the dining room is busiest.
const (
	PeakStart = "20:30"
	PeakEnd   = "22:00"
)

// Hours is an opening window in "HH:MM".  Close may be "00:00" for midnight.
type Hours struct {
	Open  string
	Close string
}

// OpeningHours returns the window for a weekday.
func OpeningHours(d time.Weekday) Hours {
	switch d {
	case time.Friday, time.Saturday:
		return Hours{Open: "13:00", Close: "00:00"}
	case time.Sunday:
		return Hours{Open: "13:00", Close: "22:00"}
	default:
		return Hours{Open: "13:00", Close: "23:00"}
	}
}
