package booking

import (
	"context"
	"testing"
	"time"

	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/models"
)

func TestListBookingsByMonthDefaultsToCurrentMonth(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now().UTC()
	repo.bookings = append(repo.bookings, models.Booking{
		ID:             1,
		OrganizationID: 1,
		EmployeeID:     1,
		ClientID:       1,
		StartTime:      now,
		EndTime:        now.Add(30 * time.Minute),
	})

	uc := NewListBookingsByMonth(repo)

	// The calendar's initial load sends no month/year filter.
	got, err := uc.Execute(context.Background(), 1, 0, 0, nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d bookings, want 1 (current month should be the default)", len(got))
	}
}

func TestListBookingsByMonthRejectsBadFilters(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
	}{
		{"month too large", 2026, 13},
		{"month without year", 0, 3},
		{"year too small", 1999, 3},
		{"year too large", 2300, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewListBookingsByMonth(newFakeRepo())
			_, err := uc.Execute(context.Background(), 1, tt.year, tt.month, nil)
			if httperr.BusinessCode(err) != "invalid_month" {
				t.Errorf("error = %v, want invalid_month", err)
			}
		})
	}
}
