package booking

import (
	"context"
	"time"

	"github.com/salonkit/salon-admin/internal/models"
)

type Repository interface {
	// -------- Organization --------
	GetOrganizationByID(
		ctx context.Context,
		id uint,
	) (*models.Organization, error)

	// -------- Referenced entities (tenant-scoped) --------
	GetEmployee(
		ctx context.Context,
		organizationID uint,
		employeeID uint,
	) (*models.Employee, error)

	GetClient(
		ctx context.Context,
		organizationID uint,
		clientID uint,
	) (*models.Client, error)

	GetServices(
		ctx context.Context,
		organizationID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// -------- Booking --------

	// CreateBooking performs the conflict check and the insert in one
	// transaction; a concurrent overlap surfaces as booking_conflict.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		organizationID uint,
		bookingID uint,
	) (*models.Booking, error)

	DeleteBooking(
		ctx context.Context,
		organizationID uint,
		bookingID uint,
	) error

	ListBookingsForDay(
		ctx context.Context,
		employeeID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		organizationID uint,
		start time.Time,
		end time.Time,
		employeeID *uint,
	) ([]models.Booking, error)
}
