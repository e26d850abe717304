package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/audit"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/httpresp"
	"github.com/salonkit/salon-admin/internal/models"
)

type EmployeeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEmployeeHandler(db *gorm.DB, audit *audit.Dispatcher) *EmployeeHandler {
	return &EmployeeHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name *string `json:"name,omitempty"`
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	act := currentActor(c)

	q := h.db.Where("organization_id = ?", act.OrganizationID)

	switch strings.TrimSpace(c.DefaultQuery("status", models.StatusActive)) {
	case "all":
	case models.StatusHidden:
		q = q.Where("status = ?", models.StatusHidden)
	default:
		q = q.Where("status = ?", models.StatusActive)
	}

	var employees []models.Employee
	if err := q.Order("name ASC").Find(&employees).Error; err != nil {
		httperr.Internal(c, "employee_list_failed", "Could not list employees.")
		return
	}

	httpresp.List(c, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	act := currentActor(c)

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "name_required", "Employee name is required.")
		return
	}

	employee := models.Employee{
		OrganizationID: act.OrganizationID,
		Name:           name,
		Status:         models.StatusActive,
	}

	if err := h.db.Create(&employee).Error; err != nil {
		httperr.Internal(c, "employee_create_failed", "Could not create employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "employee_created",
		EntityType:     "employee",
		EntityID:       &employee.ID,
		Details:        map[string]any{"name": employee.Name},
	})

	httpresp.Created(c, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&employee).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "employee_not_found", "Employee not found.")
			return
		}
		httperr.Internal(c, "employee_get_failed", "Could not load employee.")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Employee name is required.")
			return
		}
		employee.Name = name
	}

	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "employee_update_failed", "Could not update employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "employee_updated",
		EntityType:     "employee",
		EntityID:       &employee.ID,
	})

	httpresp.OK(c, employee)
}

// Delete soft-deletes. An employee with future bookings stays visible so the
// calendar keeps making sense.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&employee).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "employee_not_found", "Employee not found.")
			return
		}
		httperr.Internal(c, "employee_get_failed", "Could not load employee.")
		return
	}

	var future int64
	if err := h.db.Model(&models.Booking{}).
		Where("employee_id = ? AND end_time > ?", employee.ID, nowUTC()).
		Count(&future).Error; err != nil {
		httperr.Internal(c, "employee_delete_failed", "Could not delete employee.")
		return
	}
	if future > 0 {
		httperr.BadRequest(c, "has_future_bookings", "Employee has upcoming bookings.")
		return
	}

	employee.Status = models.StatusHidden
	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "employee_delete_failed", "Could not delete employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "employee_deleted",
		EntityType:     "employee",
		EntityID:       &employee.ID,
	})

	httpresp.OK(c, employee)
}

func (h *EmployeeHandler) Restore(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&employee).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "employee_not_found", "Employee not found.")
			return
		}
		httperr.Internal(c, "employee_get_failed", "Could not load employee.")
		return
	}

	employee.Status = models.StatusActive
	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "employee_restore_failed", "Could not restore employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "employee_restored",
		EntityType:     "employee",
		EntityID:       &employee.ID,
	})

	httpresp.OK(c, employee)
}
