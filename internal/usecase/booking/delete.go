package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/audit"
	domain "github.com/salonkit/salon-admin/internal/domain/booking"
	"github.com/salonkit/salon-admin/internal/httperr"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	organizationID uint,
	bookingID uint,
	actorID uint,
	actorName string,
) error {

	b, err := uc.repo.GetBooking(ctx, organizationID, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("booking_not_found")
		}
		return err
	}

	if err := uc.repo.DeleteBooking(ctx, organizationID, bookingID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		OrganizationID: organizationID,
		UserID:         &actorID,
		Username:       actorName,
		Action:         "booking_deleted",
		EntityType:     "booking",
		EntityID:       &bookingID,
		Details: map[string]any{
			"employee_id": b.EmployeeID,
			"start_time":  b.StartTime,
			"end_time":    b.EndTime,
		},
	})

	return nil
}
