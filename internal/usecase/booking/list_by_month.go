package booking

import (
	"context"
	"time"

	domain "github.com/salonkit/salon-admin/internal/domain/booking"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/models"
	"github.com/salonkit/salon-admin/internal/timezone"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(repo domain.Repository) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	organizationID uint,
	year int,
	month int,
	employeeID *uint,
) ([]models.Booking, error) {

	org, err := uc.repo.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(org.Timezone)

	// No filter means the current month, in the organization's timezone.
	if month == 0 && year == 0 {
		now := time.Now().In(loc)
		year, month = now.Year(), int(now.Month())
	}

	if month < 1 || month > 12 || year < 2000 || year > 2200 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.repo.ListBookingsForPeriod(ctx, organizationID, start, end, employeeID)
}
