package main

import (
	"fmt"
	"os"
	"time"

	"github.com/yungbote/smartlocker-backend/internal/db"
	"github.com/yungbote/smartlocker-backend/internal/handlers"
	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/middleware"
	"github.com/yungbote/smartlocker-backend/internal/repos"
	"github.com/yungbote/smartlocker-backend/internal/server"
	"github.com/yungbote/smartlocker-backend/internal/services"
	"github.com/yungbote/smartlocker-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	serverPort := utils.GetEnv("SERVER_PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	lockerRepo := repos.NewLockerRepo(thePG, log)
	compartmentRepo := repos.NewCompartmentRepo(thePG, log)
	packageRepo := repos.NewPackageRepo(thePG, log)
	auditRecordRepo := repos.NewAuditRecordRepo(thePG, log)
	notificationRepo := repos.NewNotificationRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	auditService := services.NewAuditService(thePG, log, auditRecordRepo)
	notificationService := services.NewNotificationService(thePG, log, notificationRepo)
	interceptor := services.NewActionInterceptor(log, auditService, notificationService, userRepo, lockerRepo)
	userService := services.NewUserService(thePG, log, userRepo, interceptor)
	lockerService := services.NewLockerService(thePG, log, lockerRepo, interceptor)
	compartmentService := services.NewCompartmentService(thePG, log, compartmentRepo, lockerRepo)
	packageService := services.NewPackageService(thePG, log, packageRepo, interceptor)
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)

	// Handlers
	log.Info("Setting up Handlers from main...")
	healthcheckHandler := handlers.NewHealthcheckHandler()
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	lockerHandler := handlers.NewLockerHandler(lockerService)
	compartmentHandler := handlers.NewCompartmentHandler(compartmentService)
	packageHandler := handlers.NewPackageHandler(packageService, lockerService)
	auditHandler := handlers.NewAuditHandler(auditService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		HealthcheckHandler:  healthcheckHandler,
		AuthHandler:         authHandler,
		AuthMiddleware:      authMiddleware,
		UserHandler:         userHandler,
		LockerHandler:       lockerHandler,
		CompartmentHandler:  compartmentHandler,
		PackageHandler:      packageHandler,
		AuditHandler:        auditHandler,
		NotificationHandler: notificationHandler,
	})

	log.Info("Starting server", "port", serverPort)
	if err := router.Run(":" + serverPort); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
