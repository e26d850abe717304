package booking

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/audit"
	domain "github.com/salonkit/salon-admin/internal/domain/booking"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	OrganizationID uint
	EmployeeID     uint
	ClientID       uint
	ServiceIDs     []uint

	StartTime time.Time
	// Zero EndTime means "derive from the service durations".
	EndTime time.Time

	// Nil Price means "sum of the service prices".
	Price *decimal.Decimal
	Notes string

	ActorID   uint
	ActorName string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	org, err := uc.repo.GetOrganizationByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !org.IsActive {
		return nil, httperr.ErrBusiness("organization_inactive")
	}

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("services_required")
	}

	services, err := uc.repo.GetServices(ctx, in.OrganizationID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(uniqueIDs(in.ServiceIDs)) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	for _, svc := range services {
		if svc.Status != models.StatusActive {
			return nil, httperr.ErrBusiness("service_hidden")
		}
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

	client, err := uc.repo.GetClient(ctx, in.OrganizationID, in.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}
	if client.Status != models.StatusActive {
		return nil, httperr.ErrBusiness("client_hidden")
	}

	end := in.EndTime
	if end.IsZero() {
		var total time.Duration
		for _, svc := range services {
			total += time.Duration(svc.DurationMin) * time.Minute
		}
		end = in.StartTime.Add(total)
	}

	if err := domain.ValidateInterval(in.StartTime, end); err != nil {
		return nil, err
	}

	price := decimal.Zero
	if in.Price != nil {
		price = *in.Price
		if price.IsNegative() {
			return nil, httperr.ErrBusiness("invalid_price")
		}
	} else {
		for _, svc := range services {
			price = price.Add(svc.Price)
		}
	}

	b := &models.Booking{
		OrganizationID: in.OrganizationID,
		EmployeeID:     in.EmployeeID,
		ClientID:       in.ClientID,
		Services:       services,
		StartTime:      in.StartTime,
		EndTime:        end,
		Price:          price,
		Notes:          in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		OrganizationID: in.OrganizationID,
		UserID:         &in.ActorID,
		Username:       in.ActorName,
		Action:         "booking_created",
		EntityType:     "booking",
		EntityID:       &b.ID,
		Details: map[string]any{
			"employee_id": in.EmployeeID,
			"client_id":   in.ClientID,
			"start_time":  in.StartTime,
			"end_time":    end,
		},
	})

	return b, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
