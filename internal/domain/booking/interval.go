package booking

import (
	"time"

	"github.com/salonkit/salon-admin/internal/httperr"
)

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps is the double-booking test. Intervals that only touch at a
// boundary (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ValidateInterval rejects empty and inverted ranges. A zero-length booking
// would never conflict under the half-open test, so it is refused up front.
func ValidateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return httperr.ErrBusiness("invalid_interval")
	}
	if !start.Before(end) {
		return httperr.ErrBusiness("invalid_interval")
	}
	return nil
}
