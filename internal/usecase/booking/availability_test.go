package booking

import (
	"context"
	"testing"

	"github.com/salonkit/salon-admin/internal/httperr"
)

func TestGetAvailability(t *testing.T) {
	repo := newFakeRepo()
	createUC := newCreateUC(repo, newFakeSink())
	uc := NewGetAvailability(repo)

	in := validInput()
	in.StartTime = testTime(10, 0)
	in.EndTime = testTime(11, 0)
	if _, err := createUC.Execute(context.Background(), in); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		OrganizationID: 1,
		EmployeeID:     1,
		Date:           "2026-03-10",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// 09:00-20:00 window in 30 minute steps is 22 slots; the 10:00 and
	// 10:30 slots are taken.
	if len(slots) != 20 {
		t.Errorf("got %d slots, want 20", len(slots))
	}
	for _, s := range slots {
		if s.Start == "10:00" || s.Start == "10:30" {
			t.Errorf("slot %s should be busy", s.Start)
		}
	}
}

func TestGetAvailabilityErrors(t *testing.T) {
	tests := []struct {
		name     string
		in       AvailabilityInput
		wantCode string
	}{
		{
			name:     "unknown employee",
			in:       AvailabilityInput{OrganizationID: 1, EmployeeID: 99, Date: "2026-03-10"},
			wantCode: "employee_not_found",
		},
		{
			name:     "hidden employee",
			in:       AvailabilityInput{OrganizationID: 1, EmployeeID: 2, Date: "2026-03-10"},
			wantCode: "employee_hidden",
		},
		{
			name:     "malformed date",
			in:       AvailabilityInput{OrganizationID: 1, EmployeeID: 1, Date: "10/03/2026"},
			wantCode: "invalid_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewGetAvailability(newFakeRepo())
			_, err := uc.Execute(context.Background(), tt.in)
			if got := httperr.BusinessCode(err); got != tt.wantCode {
				t.Errorf("error code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
		})
	}
}
