package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/audit"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/httpresp"
	"github.com/salonkit/salon-admin/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	DurationMin int             `json:"duration_min" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	act := currentActor(c)

	q := h.db.Where("organization_id = ?", act.OrganizationID)

	switch strings.TrimSpace(c.DefaultQuery("status", models.StatusActive)) {
	case "all":
	case models.StatusHidden:
		q = q.Where("status = ?", models.StatusHidden)
	default:
		q = q.Where("status = ?", models.StatusActive)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "service_list_failed", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	act := currentActor(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "Price must be zero or positive.")
		return
	}

	service := models.Service{
		OrganizationID: act.OrganizationID,
		Name:           strings.TrimSpace(req.Name),
		DurationMin:    req.DurationMin,
		Price:          req.Price,
		Status:         models.StatusActive,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "service_create_failed", "Could not create service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "service_created",
		EntityType:     "service",
		EntityID:       &service.ID,
		Details:        map[string]any{"name": service.Name, "duration_min": service.DurationMin},
	})

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "service_get_failed", "Could not load service.")
		return
	}

	var req UpdateServiceRequest
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
			httperr.BadRequest(c, "name_required", "Service name is required.")
			return
		}
		service.Name = name
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be positive.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "Price must be zero or positive.")
			return
		}
		service.Price = *req.Price
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "service_update_failed", "Could not update service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "service_updated",
		EntityType:     "service",
		EntityID:       &service.ID,
	})

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "service_get_failed", "Could not load service.")
		return
	}

	var future int64
	if err := h.db.Model(&models.Booking{}).
		Joins("JOIN booking_services bs ON bs.booking_id = bookings.id").
		Where("bs.service_id = ? AND bookings.end_time > ?", service.ID, nowUTC()).
		Count(&future).Error; err != nil {
		httperr.Internal(c, "service_delete_failed", "Could not delete service.")
		return
	}
	if future > 0 {
		httperr.BadRequest(c, "has_future_bookings", "Service is used by upcoming bookings.")
		return
	}

	service.Status = models.StatusHidden
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "service_delete_failed", "Could not delete service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "service_deleted",
		EntityType:     "service",
		EntityID:       &service.ID,
	})

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Restore(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "service_get_failed", "Could not load service.")
		return
	}

	service.Status = models.StatusActive
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "service_restore_failed", "Could not restore service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "service_restored",
		EntityType:     "service",
		EntityID:       &service.ID,
	})

	httpresp.OK(c, service)
}
