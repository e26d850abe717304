package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/audit"
	"github.com/salonkit/salon-admin/internal/cache"
	"github.com/salonkit/salon-admin/internal/config"
	"github.com/salonkit/salon-admin/internal/handlers"
	infraRepo "github.com/salonkit/salon-admin/internal/infra/repository"
	"github.com/salonkit/salon-admin/internal/middleware"
	"github.com/salonkit/salon-admin/internal/models"
	ucBooking "github.com/salonkit/salon-admin/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	c *cache.Cache,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db, c)
	userRepo := infraRepo.NewUserGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, auditDispatcher)
	listByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)
	listByDayUC := ucBooking.NewListBookingsByDay(bookingRepo)
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	employeeHandler := handlers.NewEmployeeHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	clientHandler := handlers.NewClientHandler(db, auditDispatcher)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		deleteBookingUC,
		listByMonthUC,
		listByDayUC,
		availabilityUC,
	)
	historyHandler := handlers.NewHistoryHandler(db)
	userHandler := handlers.NewUserHandler(db, auditDispatcher)
	organizationHandler := handlers.NewOrganizationHandler(db, c, auditDispatcher)
	superadminUserHandler := handlers.NewSuperadminUserHandler(db, auditDispatcher)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (public)
		// ------------------------------
		api.POST("/auth/login", middleware.RateLimitPerIP(rate.Limit(1), 5), authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, userRepo))
		{
			secured.GET("/auth/session", authHandler.Session)
			secured.GET("/auth/me", authHandler.Me)

			secured.GET("/employees", employeeHandler.List)
			secured.POST("/employees", employeeHandler.Create)
			secured.PUT("/employees/:id", employeeHandler.Update)
			secured.DELETE("/employees/:id", employeeHandler.Delete)
			secured.PATCH("/employees/:id/restore", employeeHandler.Restore)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)
			secured.PATCH("/services/:id/restore", serviceHandler.Restore)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)
			secured.PATCH("/clients/:id/restore", clientHandler.Restore)

			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", bookingHandler.Create)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)
			secured.GET("/bookings/availability", bookingHandler.Availability)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/history", historyHandler.List)

				admin.GET("/users", userHandler.List)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id", userHandler.Update)
				admin.DELETE("/users/:id", userHandler.Delete)
			}

			// ------------------------------
			// SUPERADMIN
			// ------------------------------
			superadmin := secured.Group("/")
			superadmin.Use(middleware.RequireRole(models.RoleSuperadmin))
			{
				superadmin.GET("/organizations", organizationHandler.List)
				superadmin.GET("/organizations/:id", organizationHandler.Get)
				superadmin.POST("/organizations", organizationHandler.Create)
				superadmin.PUT("/organizations/:id", organizationHandler.Update)

				superadmin.GET("/superadmin/users", superadminUserHandler.List)
				superadmin.POST("/superadmin/users", superadminUserHandler.Create)
				superadmin.PUT("/superadmin/users/:id", superadminUserHandler.Update)
				superadmin.DELETE("/superadmin/users/:id", superadminUserHandler.Delete)
			}
		}
	}
}
