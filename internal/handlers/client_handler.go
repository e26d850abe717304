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
	"github.com/salonkit/salon-admin/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Notes    string `json:"notes"`
}

type UpdateClientRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	act := currentActor(c)
	page, limit, offset := pagination(c)

	q := h.db.Model(&models.Client{}).
		Where("organization_id = ?", act.OrganizationID)

	switch strings.TrimSpace(c.DefaultQuery("status", models.StatusActive)) {
	case "all":
	case models.StatusHidden:
		q = q.Where("status = ?", models.StatusHidden)
	default:
		q = q.Where("status = ?", models.StatusActive)
	}

	if search := strings.ToLower(strings.TrimSpace(c.Query("q"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "client_list_failed", "Could not list clients.")
		return
	}

	var clients []models.Client
	if err := q.
		Order("full_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "client_list_failed", "Could not list clients.")
		return
	}

	httpresp.Page(c, clients, total, page, limit)
}

func (h *ClientHandler) Create(c *gin.Context) {
	act := currentActor(c)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if !validators.IsValidPhone(phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone number is not valid.")
		return
	}

	// Uniqueness is per organization; the composite index backs this up
	// against races.
	var count int64
	h.db.Model(&models.Client{}).
		Where("organization_id = ? AND phone = ?", act.OrganizationID, phone).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "phone_taken", "A client with this phone already exists.")
		return
	}

	client := models.Client{
		OrganizationID: act.OrganizationID,
		FullName:       strings.TrimSpace(req.FullName),
		Phone:          phone,
		Notes:          req.Notes,
		Status:         models.StatusActive,
	}

	if err := h.db.Create(&client).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.BadRequest(c, "phone_taken", "A client with this phone already exists.")
			return
		}
		httperr.Internal(c, "client_create_failed", "Could not create client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "client_created",
		EntityType:     "client",
		EntityID:       &client.ID,
		Details:        map[string]any{"full_name": client.FullName},
	})

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return
		}
		httperr.Internal(c, "client_get_failed", "Could not load client.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Client name is required.")
			return
		}
		client.FullName = name
	}
	if req.Phone != nil {
		phone := validators.NormalizePhone(*req.Phone)
		if !validators.IsValidPhone(phone) {
			httperr.BadRequest(c, "invalid_phone", "Phone number is not valid.")
			return
		}
		if phone != client.Phone {
			var count int64
			h.db.Model(&models.Client{}).
				Where("organization_id = ? AND phone = ? AND id <> ?", act.OrganizationID, phone, client.ID).
				Count(&count)
			if count > 0 {
				httperr.BadRequest(c, "phone_taken", "A client with this phone already exists.")
				return
			}
			client.Phone = phone
		}
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := h.db.Save(&client).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.BadRequest(c, "phone_taken", "A client with this phone already exists.")
			return
		}
		httperr.Internal(c, "client_update_failed", "Could not update client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "client_updated",
		EntityType:     "client",
		EntityID:       &client.ID,
	})

	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return
		}
		httperr.Internal(c, "client_get_failed", "Could not load client.")
		return
	}

	var future int64
	if err := h.db.Model(&models.Booking{}).
		Where("client_id = ? AND end_time > ?", client.ID, nowUTC()).
		Count(&future).Error; err != nil {
		httperr.Internal(c, "client_delete_failed", "Could not delete client.")
		return
	}
	if future > 0 {
		httperr.BadRequest(c, "has_future_bookings", "Client has upcoming bookings.")
		return
	}

	client.Status = models.StatusHidden
	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "client_delete_failed", "Could not delete client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "client_deleted",
		EntityType:     "client",
		EntityID:       &client.ID,
	})

	httpresp.OK(c, client)
}

func (h *ClientHandler) Restore(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return
		}
		httperr.Internal(c, "client_get_failed", "Could not load client.")
		return
	}

	client.Status = models.StatusActive
	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "client_restore_failed", "Could not restore client.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "client_restored",
		EntityType:     "client",
		EntityID:       &client.ID,
	})

	httpresp.OK(c, client)
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
