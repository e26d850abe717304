package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/audit"
	domain "github.com/salonkit/salon-admin/internal/domain/booking"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/models"
)

// ======================================================
// FAKES
// ======================================================

var errNotFound = gorm.ErrRecordNotFound

type fakeRepo struct {
	org       *models.Organization
	employees map[uint]models.Employee
	clients   map[uint]models.Client
	services  map[uint]models.Service

	bookings []models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	price, _ := decimal.NewFromString("50.00")
	return &fakeRepo{
		org: &models.Organization{
			ID:              1,
			Name:            "Main Street Salon",
			Slug:            "main-street",
			Timezone:        "UTC",
			SlotIntervalMin: 30,
			DayStart:        "09:00",
			DayEnd:          "20:00",
			IsActive:        true,
		},
		employees: map[uint]models.Employee{
			1: {ID: 1, OrganizationID: 1, Name: "Anna", Status: models.StatusActive},
			2: {ID: 2, OrganizationID: 1, Name: "Kim", Status: models.StatusHidden},
		},
		clients: map[uint]models.Client{
			1: {ID: 1, OrganizationID: 1, FullName: "Pat Doe", Phone: "+15550001", Status: models.StatusActive},
		},
		services: map[uint]models.Service{
			1: {ID: 1, OrganizationID: 1, Name: "Haircut", DurationMin: 30, Price: price, Status: models.StatusActive},
			2: {ID: 2, OrganizationID: 1, Name: "Coloring", DurationMin: 60, Price: price, Status: models.StatusActive},
			3: {ID: 3, OrganizationID: 1, Name: "Retired", DurationMin: 30, Price: price, Status: models.StatusHidden},
		},
		nextID: 1,
	}
}

func (f *fakeRepo) GetOrganizationByID(_ context.Context, id uint) (*models.Organization, error) {
	if f.org == nil || f.org.ID != id {
		return nil, errNotFound
	}
	return f.org, nil
}

func (f *fakeRepo) GetEmployee(_ context.Context, orgID, employeeID uint) (*models.Employee, error) {
	e, ok := f.employees[employeeID]
	if !ok || e.OrganizationID != orgID {
		return nil, errNotFound
	}
	return &e, nil
}

func (f *fakeRepo) GetClient(_ context.Context, orgID, clientID uint) (*models.Client, error) {
	cl, ok := f.clients[clientID]
	if !ok || cl.OrganizationID != orgID {
		return nil, errNotFound
	}
	return &cl, nil
}

func (f *fakeRepo) GetServices(_ context.Context, orgID uint, ids []uint) ([]models.Service, error) {
	seen := map[uint]bool{}
	var out []models.Service
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if svc, ok := f.services[id]; ok && svc.OrganizationID == orgID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	candidate := domain.Interval{Start: b.StartTime, End: b.EndTime}
	for _, existing := range f.bookings {
		if existing.EmployeeID != b.EmployeeID {
			continue
		}
		if domain.Overlaps(candidate, domain.Interval{Start: existing.StartTime, End: existing.EndTime}) {
			return httperr.ErrBusiness("booking_conflict")
		}
	}
	b.ID = f.nextID
	f.nextID++
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeRepo) GetBooking(_ context.Context, orgID, bookingID uint) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID && f.bookings[i].OrganizationID == orgID {
			return &f.bookings[i], nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) DeleteBooking(_ context.Context, orgID, bookingID uint) error {
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID && f.bookings[i].OrganizationID == orgID {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRepo) ListBookingsForDay(_ context.Context, employeeID uint, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.EmployeeID == employeeID && b.StartTime.Before(dayEnd) && b.EndTime.After(dayStart) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBookingsForPeriod(_ context.Context, orgID uint, start, end time.Time, employeeID *uint) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.OrganizationID != orgID {
			continue
		}
		if employeeID != nil && b.EmployeeID != *employeeID {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type fakeSink struct {
	events chan audit.Event
}

func newFakeSink() *fakeSink {
	return &fakeSink{events: make(chan audit.Event, 16)}
}

func (s *fakeSink) Write(ev audit.Event) error {
	s.events <- ev
	return nil
}

// ======================================================
// TESTS
// ======================================================

func testTime(h, m int) time.Time {
	return time.Date(2026, time.March, 10, h, m, 0, 0, time.UTC)
}

func newCreateUC(repo *fakeRepo, sink audit.Sink) *CreateBooking {
	return NewCreateBooking(repo, audit.NewDispatcher(sink, zap.NewNop()))
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		OrganizationID: 1,
		EmployeeID:     1,
		ClientID:       1,
		ServiceIDs:     []uint{1},
		StartTime:      testTime(10, 0),
		EndTime:        testTime(10, 30),
		ActorID:        7,
		ActorName:      "reception",
	}
}

func TestCreateBooking(t *testing.T) {
	repo := newFakeRepo()
	sink := newFakeSink()
	uc := newCreateUC(repo, sink)

	b, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if b.ID == 0 {
		t.Error("booking was not persisted")
	}
	if !b.Price.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("price = %s, want 50.00", b.Price)
	}

	select {
	case ev := <-sink.events:
		if ev.Action != "booking_created" {
			t.Errorf("audit action = %s, want booking_created", ev.Action)
		}
		if ev.OrganizationID != 1 {
			t.Errorf("audit organization = %d, want 1", ev.OrganizationID)
		}
	case <-time.After(2 * time.Second):
		t.Error("no audit event written")
	}
}

func TestCreateBookingDerivesEndAndPrice(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, newFakeSink())

	in := validInput()
	in.ServiceIDs = []uint{1, 2}
	in.EndTime = time.Time{}

	b, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantEnd := in.StartTime.Add(90 * time.Minute)
	if !b.EndTime.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", b.EndTime, wantEnd)
	}
	if !b.Price.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("price = %s, want 100.00", b.Price)
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, newFakeSink())

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantCode string
	}{
		{"same slot", testTime(10, 0), testTime(10, 30), "booking_conflict"},
		{"overlapping tail", testTime(10, 15), testTime(10, 45), "booking_conflict"},
		{"contains existing", testTime(9, 30), testTime(11, 0), "booking_conflict"},
		{"adjacent after", testTime(10, 30), testTime(11, 0), ""},
		{"adjacent before", testTime(9, 30), testTime(10, 0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.StartTime = tt.start
			in.EndTime = tt.end

			_, err := uc.Execute(context.Background(), in)
			if got := httperr.BusinessCode(err); got != tt.wantCode {
				t.Errorf("error code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestCreateBookingDifferentEmployeesMayOverlap(t *testing.T) {
	repo := newFakeRepo()
	repo.employees[3] = models.Employee{ID: 3, OrganizationID: 1, Name: "Lee", Status: models.StatusActive}
	uc := newCreateUC(repo, newFakeSink())

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	in := validInput()
	in.EmployeeID = 3
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Errorf("same slot for another employee should be allowed, got %v", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*fakeRepo, *CreateBookingInput)
		wantCode string
	}{
		{
			name:     "inactive organization",
			mutate:   func(r *fakeRepo, _ *CreateBookingInput) { r.org.IsActive = false },
			wantCode: "organization_inactive",
		},
		{
			name:     "no services",
			mutate:   func(_ *fakeRepo, in *CreateBookingInput) { in.ServiceIDs = nil },
			wantCode: "services_required",
		},
		{
			name:     "unknown service",
			mutate:   func(_ *fakeRepo, in *CreateBookingInput) { in.ServiceIDs = []uint{99} },
			wantCode: "service_not_found",
		},
		{
			name:     "hidden service",
			mutate:   func(_ *fakeRepo, in *CreateBookingInput) { in.ServiceIDs = []uint{3} },
			wantCode: "service_hidden",
		},
		{
			name:     "unknown employee",
			mutate:   func(_ *fakeRepo, in *CreateBookingInput) { in.EmployeeID = 99 },
			wantCode: "employee_not_found",
		},
		{
			name:     "hidden employee",
			mutate:   func(_ *fakeRepo, in *CreateBookingInput) { in.EmployeeID = 2 },
			wantCode: "employee_hidden",
		},
		{
			name:     "unknown client",
			mutate:   func(_ *fakeRepo, in *CreateBookingInput) { in.ClientID = 99 },
			wantCode: "client_not_found",
		},
		{
			name: "zero duration",
			mutate: func(_ *fakeRepo, in *CreateBookingInput) {
				in.EndTime = in.StartTime
			},
			wantCode: "invalid_interval",
		},
		{
			name: "end before start",
			mutate: func(_ *fakeRepo, in *CreateBookingInput) {
				in.EndTime = in.StartTime.Add(-time.Hour)
			},
			wantCode: "invalid_interval",
		},
		{
			name: "negative price",
			mutate: func(_ *fakeRepo, in *CreateBookingInput) {
				p := decimal.NewFromInt(-1)
				in.Price = &p
			},
			wantCode: "invalid_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			uc := newCreateUC(repo, newFakeSink())

			in := validInput()
			tt.mutate(repo, &in)

			_, err := uc.Execute(context.Background(), in)
			if got := httperr.BusinessCode(err); got != tt.wantCode {
				t.Errorf("error code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
		})
	}
}

// erringRepo simulates the store being unreachable for entity lookups.
type erringRepo struct {
	*fakeRepo
	err error
}

func (r *erringRepo) GetEmployee(ctx context.Context, orgID, employeeID uint) (*models.Employee, error) {
	return nil, r.err
}

func (r *erringRepo) GetClient(ctx context.Context, orgID, clientID uint) (*models.Client, error) {
	return nil, r.err
}

func TestCreateBookingInfrastructureErrorIsNotNotFound(t *testing.T) {
	repo := &erringRepo{fakeRepo: newFakeRepo(), err: errors.New("connection refused")}
	uc := NewCreateBooking(repo, audit.NewDispatcher(newFakeSink(), zap.NewNop()))

	_, err := uc.Execute(context.Background(), validInput())
	if err == nil {
		t.Fatal("expected an error")
	}
	// A store outage must not masquerade as a missing entity.
	if code := httperr.BusinessCode(err); code != "" {
		t.Errorf("error code = %q, want a plain error", code)
	}
}

func TestDeleteBooking(t *testing.T) {
	repo := newFakeRepo()
	sink := newFakeSink()
	createUC := newCreateUC(repo, sink)
	deleteUC := NewDeleteBooking(repo, audit.NewDispatcher(sink, zap.NewNop()))

	b, err := createUC.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	if err := deleteUC.Execute(context.Background(), 1, b.ID, 7, "reception"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	err = deleteUC.Execute(context.Background(), 1, b.ID, 7, "reception")
	if httperr.BusinessCode(err) != "booking_not_found" {
		t.Errorf("second delete = %v, want booking_not_found", err)
	}
}
