package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odnowakanapowa/booking-api/internal/audit"
	"github.com/odnowakanapowa/booking-api/internal/cache"
	"github.com/odnowakanapowa/booking-api/internal/config"
	"github.com/odnowakanapowa/booking-api/internal/handlers"
	infraRepo "github.com/odnowakanapowa/booking-api/internal/infra/repository"
	"github.com/odnowakanapowa/booking-api/internal/mailer"
	"github.com/odnowakanapowa/booking-api/internal/middleware"
	"github.com/odnowakanapowa/booking-api/internal/storage"
	ucBooking "github.com/odnowakanapowa/booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.AllowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifier := mailer.NewSMTPNotifier(cfg)
	mailDispatcher := mailer.NewDispatcher(notifier)

	readCache := cache.New(cfg)
	imageStore := storage.NewImageStore(cfg)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		mailDispatcher,
		auditDispatcher,
		readCache,
	)

	availableTimesUC := ucBooking.NewGetAvailableTimes(bookingRepo, readCache)
	occupiedDatesUC := ucBooking.NewGetOccupiedDates(bookingRepo, readCache)

	listMineUC := ucBooking.NewListUserBookings(bookingRepo)
	listAllUC := ucBooking.NewListAllBookings(bookingRepo)

	changeStatusUC := ucBooking.NewChangeStatus(
		bookingRepo,
		mailDispatcher,
		auditDispatcher,
		readCache,
	)

	updateBookingUC := ucBooking.NewUpdateBooking(
		bookingRepo,
		auditDispatcher,
		readCache,
	)

	deleteBookingUC := ucBooking.NewDeleteBooking(
		bookingRepo,
		auditDispatcher,
		readCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, mailDispatcher)
	userHandler := handlers.NewUserHandler(db, auditDispatcher)
	catalogHandler := handlers.NewCatalogHandler(db, readCache)
	contactHandler := handlers.NewContactHandler(mailDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		createBookingUC,
		availableTimesUC,
		occupiedDatesUC,
		listMineUC,
	)

	adminAppointmentHandler := handlers.NewAdminAppointmentHandler(
		listAllUC,
		changeStatusUC,
		updateBookingUC,
		deleteBookingUC,
	)

	serviceAdminHandler := handlers.NewServiceAdminHandler(
		db,
		readCache,
		imageStore,
		auditDispatcher,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.GET("/auth/confirm", authHandler.Confirm)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", catalogHandler.List)
		api.POST("/contact", contactHandler.Send)

		appointments := api.Group("/appointments")
		{
			appointments.GET("/services", catalogHandler.ListWrapped)
			appointments.GET("/available-times/:date", appointmentHandler.AvailableTimes)
			appointments.GET("/occupied-dates", appointmentHandler.OccupiedDates)
			appointments.POST("/guest", appointmentHandler.CreateGuest)

			appointments.POST("", middleware.AuthMiddleware(cfg), appointmentHandler.Create)
		}

		// ------------------------------
		// AUTHENTICATED USER
		// ------------------------------
		user := api.Group("/user")
		user.Use(middleware.AuthMiddleware(cfg))
		{
			user.GET("/profile", userHandler.GetProfile)
			user.PUT("/profile", userHandler.UpdateProfile)
			user.PUT("/password", userHandler.ChangePassword)
			user.DELETE("/profile", userHandler.DeleteProfile)
			user.GET("/appointments", appointmentHandler.ListMine)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
		{
			admin.GET("/check", adminAppointmentHandler.Check)
			admin.GET("/appointments", adminAppointmentHandler.List)
			admin.PUT("/appointments/:id/status", adminAppointmentHandler.UpdateStatus)
			admin.PUT("/appointments/:id", adminAppointmentHandler.Update)
			admin.DELETE("/appointments/:id", adminAppointmentHandler.Delete)
			admin.PATCH("/services/:id", serviceAdminHandler.Update)
			admin.POST("/services/:id/image", serviceAdminHandler.UploadImage)
		}
	}
}
