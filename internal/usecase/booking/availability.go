package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/salonkit/salon-admin/internal/domain/booking"
	"github.com/salonkit/salon-admin/internal/domain/schedule"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/models"
	"github.com/salonkit/salon-admin/internal/timezone"
)

type AvailabilityInput struct {
	OrganizationID uint
	EmployeeID     uint
	Date           string
	// Optional; defaults to the organization's slot interval.
	DurationMin int
}

// GetAvailability is the server-side source of truth for the calendar's free
// slots; the SPA's own computation is advisory only.
type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]schedule.TimeSlot, error) {

	org, err := uc.repo.GetOrganizationByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}

	employee, err := uc.repo.GetEmployee(ctx, in.OrganizationID, in.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("employee_not_found")
		}
		return nil, err
	}
	if employee.Status != models.StatusActive {
		return nil, httperr.ErrBusiness("employee_hidden")
	}

	loc := timezone.Location(org.Timezone)
	day, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	existing, err := uc.repo.ListBookingsForDay(
		ctx,
		in.EmployeeID,
		day,
		day.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(existing))
	for _, b := range existing {
		busy = append(busy, domain.Interval{
			Start: b.StartTime.In(loc),
			End:   b.EndTime.In(loc),
		})
	}

	return schedule.FreeSlots(
		day,
		org.DayStart,
		org.DayEnd,
		org.SlotIntervalMin,
		in.DurationMin,
		busy,
	), nil
}
