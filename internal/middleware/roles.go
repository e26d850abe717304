package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonkit/salon-admin/internal/models"
)

var roleRank = map[string]int{
	models.RoleUser:       1,
	models.RoleAdmin:      2,
	models.RoleSuperadmin: 3,
}

// RequireRole gates a route group on a minimum role. Must run after
// AuthMiddleware.
func RequireRole(minimum string) gin.HandlerFunc {
	required := roleRank[minimum]
	return func(c *gin.Context) {
		role, _ := c.MustGet(ContextUserRole).(string)
		if roleRank[role] < required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error_code": "forbidden", "message": "Insufficient permissions."})
			return
		}
		c.Next()
	}
}
