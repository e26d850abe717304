package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/httpresp"
	ucBooking "github.com/salonkit/salon-admin/internal/usecase/booking"
)

type BookingHandler struct {
	createUC       *ucBooking.CreateBooking
	deleteUC       *ucBooking.DeleteBooking
	listByMonthUC  *ucBooking.ListBookingsByMonth
	listByDayUC    *ucBooking.ListBookingsByDay
	availabilityUC *ucBooking.GetAvailability
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	deleteUC *ucBooking.DeleteBooking,
	listByMonthUC *ucBooking.ListBookingsByMonth,
	listByDayUC *ucBooking.ListBookingsByDay,
	availabilityUC *ucBooking.GetAvailability,
) *BookingHandler {
	return &BookingHandler{
		createUC:       createUC,
		deleteUC:       deleteUC,
		listByMonthUC:  listByMonthUC,
		listByDayUC:    listByDayUC,
		availabilityUC: availabilityUC,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	ClientID   uint   `json:"client_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`

	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time"`

	Price *decimal.Decimal `json:"price,omitempty"`
	Notes string           `json:"notes"`
}

// --------- Handlers ---------

func (h *BookingHandler) Create(c *gin.Context) {
	act := currentActor(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		OrganizationID: act.OrganizationID,
		EmployeeID:     req.EmployeeID,
		ClientID:       req.ClientID,
		ServiceIDs:     req.ServiceIDs,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Price:          req.Price,
		Notes:          req.Notes,
		ActorID:        act.UserID,
		ActorName:      act.Username,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, b)
}

// List serves the calendar: ?month=&year= for month view, ?date= for day
// view, optional ?employee_id= on both.
func (h *BookingHandler) List(c *gin.Context) {
	act := currentActor(c)

	var employeeID *uint
	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_employee_id", "Invalid employee_id parameter.")
			return
		}
		v := uint(id)
		employeeID = &v
	}

	if date := c.Query("date"); date != "" {
		bookings, err := h.listByDayUC.Execute(c.Request.Context(), act.OrganizationID, date, employeeID)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		httpresp.List(c, bookings)
		return
	}

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	bookings, err := h.listByMonthUC.Execute(c.Request.Context(), act.OrganizationID, year, month, employeeID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), act.OrganizationID, id, act.UserID, act.Username); err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"ok": true})
}

func (h *BookingHandler) Availability(c *gin.Context) {
	act := currentActor(c)

	employeeID, err := strconv.ParseUint(c.Query("employee_id"), 10, 32)
	if err != nil || employeeID == 0 {
		httperr.BadRequest(c, "invalid_employee_id", "employee_id is required.")
		return
	}

	durationMin, _ := strconv.Atoi(c.Query("duration_min"))

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucBooking.AvailabilityInput{
		OrganizationID: act.OrganizationID,
		EmployeeID:     uint(employeeID),
		Date:           c.Query("date"),
		DurationMin:    durationMin,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"slots": slots})
}
