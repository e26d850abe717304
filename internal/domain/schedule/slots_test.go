package schedule

import (
	"testing"
	"time"

	"github.com/salonkit/salon-admin/internal/domain/booking"
)

func day() time.Time {
	return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
}

func busyAt(startH, startM, endH, endM int) booking.Interval {
	d := day()
	return booking.Interval{
		Start: time.Date(d.Year(), d.Month(), d.Day(), startH, startM, 0, 0, time.UTC),
		End:   time.Date(d.Year(), d.Month(), d.Day(), endH, endM, 0, 0, time.UTC),
	}
}

func slotStarts(slots []TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start
	}
	return out
}

func TestFreeSlotsEmptyDay(t *testing.T) {
	slots := FreeSlots(day(), "09:00", "11:00", 30, 30, nil)

	want := []string{"09:00", "09:30", "10:00", "10:30"}
	got := slotStarts(slots)
	if len(got) != len(want) {
		t.Fatalf("got %v slots, want %v: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %s, want %s", i, got[i], want[i])
		}
	}
	if slots[0].End != "09:30" {
		t.Errorf("first slot end = %s, want 09:30", slots[0].End)
	}
}

func TestFreeSlotsSkipsBusy(t *testing.T) {
	busy := []booking.Interval{busyAt(10, 0, 10, 30)}
	slots := FreeSlots(day(), "09:00", "11:00", 30, 30, busy)

	want := []string{"09:00", "09:30", "10:30"}
	got := slotStarts(slots)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFreeSlotsLongerDuration(t *testing.T) {
	// A 60 minute service cannot start at 10:30 when 11:00-11:30 is taken,
	// and cannot start past 10:00 at the end of the window either.
	busy := []booking.Interval{busyAt(11, 0, 11, 30)}
	slots := FreeSlots(day(), "09:00", "11:00", 30, 60, busy)

	want := []string{"09:00", "09:30", "10:00"}
	got := slotStarts(slots)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFreeSlotsBoundaryAdjacent(t *testing.T) {
	// Slots ending exactly when a booking starts, or starting exactly when
	// it ends, stay available.
	busy := []booking.Interval{busyAt(10, 0, 11, 0)}
	slots := FreeSlots(day(), "09:00", "12:00", 30, 30, busy)

	got := slotStarts(slots)
	for _, s := range got {
		if s == "10:00" || s == "10:30" {
			t.Errorf("slot %s should be blocked", s)
		}
	}

	has := func(start string) bool {
		for _, s := range got {
			if s == start {
				return true
			}
		}
		return false
	}
	if !has("09:30") {
		t.Error("slot 09:30 (ends at booking start) should be free")
	}
	if !has("11:00") {
		t.Error("slot 11:00 (starts at booking end) should be free")
	}
}

func TestFreeSlotsFullDay(t *testing.T) {
	busy := []booking.Interval{busyAt(9, 0, 20, 0)}
	slots := FreeSlots(day(), "09:00", "20:00", 30, 30, busy)
	if len(slots) != 0 {
		t.Errorf("expected no free slots, got %v", slotStarts(slots))
	}
}
