package schedule

import (
	"time"

	"github.com/salonkit/salon-admin/internal/domain/booking"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// clockOn places an "HH:MM" clock value on the given day, in the day's
// location. Malformed values fall back to midnight.
func clockOn(day time.Time, hm string) time.Time {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		t = time.Time{}
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}

// FreeSlots walks the organization's day window in intervalMin steps and
// keeps the slots where a durationMin-long booking would not collide with
// any busy interval. Boundary-adjacent slots stay available.
func FreeSlots(
	day time.Time,
	dayStart string,
	dayEnd string,
	intervalMin int,
	durationMin int,
	busy []booking.Interval,
) []TimeSlot {

	if intervalMin <= 0 {
		intervalMin = 30
	}
	if durationMin <= 0 {
		durationMin = intervalMin
	}

	windowStart := clockOn(day, dayStart)
	windowEnd := clockOn(day, dayEnd)
	step := time.Duration(intervalMin) * time.Minute
	span := time.Duration(durationMin) * time.Minute

	slots := []TimeSlot{}
	for cursor := windowStart; !cursor.Add(span).After(windowEnd); cursor = cursor.Add(step) {
		candidate := booking.Interval{Start: cursor, End: cursor.Add(span)}

		conflict := false
		for _, b := range busy {
			if booking.Overlaps(candidate, b) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: candidate.Start.Format("15:04"),
			End:   candidate.End.Format("15:04"),
		})
	}

	return slots
}
