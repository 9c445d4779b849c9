package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-scheduler/internal/audit"
	"github.com/BruksfildServices01/booking-scheduler/internal/config"
	"github.com/BruksfildServices01/booking-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/booking-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/booking-scheduler/internal/mailer"
	"github.com/BruksfildServices01/booking-scheduler/internal/media"
	"github.com/BruksfildServices01/booking-scheduler/internal/middleware"
	"github.com/BruksfildServices01/booking-scheduler/internal/session"
	ucAppointment "github.com/BruksfildServices01/booking-scheduler/internal/usecase/appointment"
	ucVerification "github.com/BruksfildServices01/booking-scheduler/internal/usecase/verification"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB           *gorm.DB
	Config       *config.Config
	Sessions     *session.Manager
	Mailer       mailer.Sender
	Audit        audit.Recorder
	Verification *ucVerification.Service
	Storage      media.Uploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestLogger(),
		middleware.Prometheus(),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		d.Audit,
		d.Mailer,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		d.Audit,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	availableSlotsUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		d.Config.SlotStep(),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Sessions, d.Verification)
	providerHandler := handlers.NewProviderHandler(d.DB, d.Audit, d.Storage)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	availabilityHandler := handlers.NewAvailabilityHandler(d.DB)
	dateBlockHandler := handlers.NewDateBlockHandler(d.DB)

	appointmentHandler := handlers.NewAppointmentHandler(
		d.DB,
		createAppointmentUC,
		updateAppointmentUC,
		listAppointmentsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	publicHandler := handlers.NewPublicHandler(d.DB, createAppointmentUC, availableSlotsUC)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/verify-email", authHandler.VerifyEmail)
		auth.POST("/resend-verification", authHandler.ResendVerification)
		auth.GET("/user", middleware.RequireSession(d.Sessions), authHandler.User)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public/provider/:slug")
		{
			public.GET("", publicHandler.Provider)
			public.GET("/services", publicHandler.Services)
			public.GET("/slots", publicHandler.Slots)
			public.POST("/book", publicHandler.Book)
		}

		// ------------------------------
		// PRIVATE (session cookie)
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.RequireSession(d.Sessions))
		{
			secured.GET("/provider", providerHandler.Get)
			secured.POST("/provider", providerHandler.Create)
			secured.PUT("/provider/:id", providerHandler.Update)
			secured.PUT("/provider/:id/image", providerHandler.UploadImage)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/availability", availabilityHandler.List)
			secured.POST("/availability", availabilityHandler.Create)
			secured.PUT("/availability/:id", availabilityHandler.Update)
			secured.DELETE("/availability/:id", availabilityHandler.Delete)

			secured.GET("/date-blocks", dateBlockHandler.List)
			secured.POST("/date-blocks", dateBlockHandler.Create)
			secured.PUT("/date-blocks/:id", dateBlockHandler.Update)
			secured.DELETE("/date-blocks/:id", dateBlockHandler.Delete)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.Update)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
