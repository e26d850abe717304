package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salonkit/salon-admin/internal/cache"
	domain "github.com/salonkit/salon-admin/internal/domain/booking"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/models"
)

const orgSettingsTTL = 5 * time.Minute

type BookingGormRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewBookingGormRepository(db *gorm.DB, c *cache.Cache) *BookingGormRepository {
	return &BookingGormRepository{db: db, cache: c}
}

// --------------------------------------------------
// Organization
// --------------------------------------------------

func (r *BookingGormRepository) GetOrganizationByID(
	ctx context.Context,
	id uint,
) (*models.Organization, error) {

	return cache.GetOrLoadJSON(r.cache, ctx, cache.OrgKey(id), orgSettingsTTL,
		func(ctx context.Context) (*models.Organization, error) {
			var org models.Organization
			if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
				return nil, err
			}
			return &org, nil
		})
}

// --------------------------------------------------
// Referenced entities
// --------------------------------------------------

func (r *BookingGormRepository) GetEmployee(
	ctx context.Context,
	organizationID uint,
	employeeID uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", employeeID, organizationID).
		First(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *BookingGormRepository) GetClient(
	ctx context.Context,
	organizationID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", clientID, organizationID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *BookingGormRepository) GetServices(
	ctx context.Context,
	organizationID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND organization_id = ?", serviceIDs, organizationID).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// CreateBooking holds a FOR UPDATE lock over the employee's bookings while
// checking for conflicts, so two concurrent requests for the same slot
// serialize instead of both passing the check. The bookings_no_overlap
// exclusion constraint backstops anything that slips through.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflicts []models.Booking
		if err := lockConflicts(tx, b).Find(&conflicts).Error; err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrBusiness("booking_conflict")
		}
		return tx.Create(b).Error
	})

	if err != nil && isOverlapViolation(err) {
		return httperr.ErrBusiness("booking_conflict")
	}
	return err
}

// lockConflicts selects, and row-locks, any booking overlapping the
// candidate's interval. Postgres refuses FOR UPDATE combined with aggregate
// functions, so the check stays a plain row query; one row is enough to
// refuse the insert.
func lockConflicts(tx *gorm.DB, b *models.Booking) *gorm.DB {
	return tx.
		Model(&models.Booking{}).
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"employee_id = ? AND start_time < ? AND end_time > ?",
			b.EmployeeID,
			b.EndTime,
			b.StartTime,
		).
		Limit(1)
}

func isOverlapViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "bookings_no_overlap") ||
		strings.Contains(msg, "23P01")
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	organizationID uint,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Client").
		Preload("Services").
		Where("id = ? AND organization_id = ?", bookingID, organizationID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	organizationID uint,
	bookingID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", bookingID, organizationID).
		Delete(&models.Booking{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	employeeID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"employee_id = ? AND start_time < ? AND end_time > ?",
			employeeID, dayEnd, dayStart,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	organizationID uint,
	start time.Time,
	end time.Time,
	employeeID *uint,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Client").
		Preload("Services").
		Where(
			"organization_id = ? AND start_time >= ? AND start_time < ?",
			organizationID, start, end,
		)

	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
