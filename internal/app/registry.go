package app

import (
	"database/sql"
	"time"

	"go-checador/internal/auth"
	"go-checador/internal/checkin"
	"go-checador/internal/company"
	"go-checador/internal/employee"
	"go-checador/internal/geofence"
	"go-checador/internal/messaging/kafka"
	"go-checador/internal/middleware"
	"go-checador/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	notifier notify.Channel,
	policy geofence.Policy,
	loc *time.Location,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	checkinRepo := checkin.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	companyService := company.NewService(db, companyRepo, rdb)
	employeeService := employee.NewService(db, employeeRepo)
	authService := auth.NewService(authRepo, companyService)
	checkinService := checkin.NewService(
		db,
		checkinRepo,
		employeeRepo,
		companyService,
		notifier,
		outboxRepo,
		rdb,
		policy,
		loc,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	checkinHandler := checkin.NewHandler(checkinService)

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// Twilio posts to the root path; everything else is the admin API.
	checkin.RegisterRoutes(router, checkinHandler)

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		employee.RegisterRoutes(api, employeeHandler)
	}

	return nil
}
