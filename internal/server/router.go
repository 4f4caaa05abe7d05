package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/smartlocker-backend/internal/handlers"
	"github.com/yungbote/smartlocker-backend/internal/middleware"
)

type RouterConfig struct {
	HealthcheckHandler  *handlers.HealthcheckHandler
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	UserHandler         *handlers.UserHandler
	LockerHandler       *handlers.LockerHandler
	CompartmentHandler  *handlers.CompartmentHandler
	PackageHandler      *handlers.PackageHandler
	AuditHandler        *handlers.AuditHandler
	NotificationHandler *handlers.NotificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Lockers
	protected.GET("/lockers", cfg.LockerHandler.List)
	protected.GET("/lockers/count", cfg.LockerHandler.CountByStatus)
	protected.GET("/lockers/number/:number", cfg.LockerHandler.GetByNumber)
	protected.GET("/lockers/:id", cfg.LockerHandler.GetByID)

	// Compartments
	protected.GET("/compartments", cfg.CompartmentHandler.List)
	protected.GET("/compartments/:id", cfg.CompartmentHandler.GetByID)

	// Packages
	protected.GET("/packages/tracking/:code", cfg.PackageHandler.GetByTrackingCode)
	protected.GET("/packages/:id", cfg.PackageHandler.GetByID)

	// Notifications
	protected.GET("/notifications", cfg.NotificationHandler.ListMine)
	protected.GET("/notifications/:id", cfg.NotificationHandler.GetByID)
	protected.PATCH("/notifications/:id/read", cfg.NotificationHandler.MarkRead)
	protected.DELETE("/notifications/:id", cfg.NotificationHandler.Remove)

	// Staff (admin or doorman)
	staff := protected.Group("/")
	staff.Use(cfg.AuthMiddleware.RequireStaff())
	staff.POST("/lockers", cfg.LockerHandler.Register)
	staff.PATCH("/lockers/:id/status", cfg.LockerHandler.Transition)
	staff.PATCH("/lockers/:id/location", cfg.LockerHandler.UpdateLocation)
	staff.PATCH("/lockers/:id/observations", cfg.LockerHandler.UpdateObservations)
	staff.POST("/compartments", cfg.CompartmentHandler.Create)
	staff.PATCH("/compartments/:id/occupied", cfg.CompartmentHandler.SetOccupied)
	staff.POST("/packages", cfg.PackageHandler.Receive)
	staff.GET("/packages", cfg.PackageHandler.List)
	staff.PATCH("/packages/:id/pickup", cfg.PackageHandler.ConfirmPickup)

	// Admin only
	admin := protected.Group("/")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	admin.DELETE("/lockers/:id", cfg.LockerHandler.Remove)
	admin.DELETE("/compartments/:id", cfg.CompartmentHandler.Remove)
	admin.DELETE("/packages/:id", cfg.PackageHandler.Remove)
	admin.GET("/users", cfg.UserHandler.List)
	admin.GET("/users/:id", cfg.UserHandler.GetByID)
	admin.PUT("/users/:id", cfg.UserHandler.Update)
	admin.DELETE("/users/:id", cfg.UserHandler.Remove)
	admin.GET("/audit", cfg.AuditHandler.List)
	admin.GET("/audit/:id", cfg.AuditHandler.GetByID)
	admin.DELETE("/audit/:id", cfg.AuditHandler.Remove)

	return router
}
