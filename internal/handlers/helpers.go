package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/middleware"
)

// identity pulled from the auth middleware context.
type actor struct {
	UserID         uint
	OrganizationID uint
	Username       string
	Role           string
}

func currentActor(c *gin.Context) actor {
	return actor{
		UserID:         c.MustGet(middleware.ContextUserID).(uint),
		OrganizationID: c.MustGet(middleware.ContextOrganizationID).(uint),
		Username:       c.MustGet(middleware.ContextUsername).(string),
		Role:           c.MustGet(middleware.ContextUserRole).(string),
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id parameter.")
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return page, limit, (page - 1) * limit
}

// writeBusinessError maps domain error codes onto HTTP responses; anything
// that is not a business error becomes a generic 500.
func writeBusinessError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	if code == "" {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	status := http.StatusBadRequest
	switch code {
	case "booking_not_found", "employee_not_found", "client_not_found", "service_not_found":
		status = http.StatusNotFound
	case "organization_inactive":
		status = http.StatusForbidden
	}

	httperr.Write(c, status, code, messageFor(code))
}

func messageFor(code string) string {
	switch code {
	case "booking_conflict":
		return "The employee already has a booking in this time slot."
	case "services_required":
		return "At least one service is required."
	case "invalid_interval":
		return "Start time must be before end time."
	case "organization_inactive":
		return "This organization is deactivated."
	default:
		return "Request could not be processed."
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func isValidClock(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}
