package booking

import (
	"context"
	"time"

	domain "github.com/salonkit/salon-admin/internal/domain/booking"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/models"
	"github.com/salonkit/salon-admin/internal/timezone"
)

type ListBookingsByDay struct {
	repo domain.Repository
}

func NewListBookingsByDay(repo domain.Repository) *ListBookingsByDay {
	return &ListBookingsByDay{repo: repo}
}

func (uc *ListBookingsByDay) Execute(
	ctx context.Context,
	organizationID uint,
	date string,
	employeeID *uint,
) ([]models.Booking, error) {

	org, err := uc.repo.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(org.Timezone)
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	return uc.repo.ListBookingsForPeriod(
		ctx,
		organizationID,
		day,
		day.AddDate(0, 0, 1),
		employeeID,
	)
}
