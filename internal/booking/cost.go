// Package booking holds the pure booking rules: the stay-cost calculation
// and the pre-submission checks on the selected room and dates.  Nothing
// here talks to the network; the handlers feed it freshly fetched data.
package booking

import (
	"math"
	"time"
)

// Nights is the number of billable nights between check-in and check-out:
// the day difference rounded up.  A checkout on or before check-in is zero
// nights.
func Nights(start, end time.Time) int {
	diff := end.Sub(start)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// Quote is a priced stay.  Zero nights means the date pair is invalid and
// the booking must not be submitted.
type Quote struct {
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightly_rate"`
	Total       float64 `json:"total"`
}

// Valid reports whether the quote may back a submission.
func (q Quote) Valid() bool { return q.Nights > 0 }

// QuoteStay prices a stay at the given nightly rate.  Recomputed on every
// call; nothing is cached.
func QuoteStay(nightlyRate float64, start, end time.Time) Quote {
	nights := Nights(start, end)
	if nights == 0 {
		return Quote{NightlyRate: nightlyRate}
	}
	return Quote{
		Nights:      nights,
		NightlyRate: nightlyRate,
		Total:       float64(nights) * nightlyRate,
	}
}
