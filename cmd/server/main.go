package main

import (
	"log"
	"time"

	"clinic_agenda_go/config"
	"clinic_agenda_go/db"
	"clinic_agenda_go/handlers"
	"clinic_agenda_go/middleware"
	"clinic_agenda_go/services"
	"clinic_agenda_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize export storage (R2 or local fallback)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Locally stored exports
	e.Static("/static/exports", cfg.ExportDir)

	// Protected routes (authentication required)
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth())
	{
		// Agenda views (all authenticated roles)
		protected.GET("/agenda/day", handlers.DayAgendaHandler)
		protected.GET("/agenda/week", handlers.WeekAgendaHandler)
		protected.GET("/agenda/events", handlers.AgendaEventsHandler)
		protected.GET("/professionals", handlers.ListProfessionalsHandler)
		protected.GET("/slots/free", handlers.SlotFreeHandler)

		// Appointments (staff only)
		appointmentRoutes := protected.Group("/appointments")
		appointmentRoutes.Use(middleware.RequireRole("admin", "professional", "receptionist"))
		{
			appointmentRoutes.GET("", handlers.ListAppointmentsHandler)
			appointmentRoutes.POST("", handlers.CreateAppointmentHandler)
			appointmentRoutes.GET("/:id", handlers.GetAppointmentHandler)
			appointmentRoutes.PUT("/:id", handlers.UpdateAppointmentHandler)
			appointmentRoutes.PUT("/:id/reschedule", handlers.RescheduleAppointmentHandler)
			appointmentRoutes.POST("/:id/confirm", handlers.ConfirmAppointmentHandler)
			appointmentRoutes.POST("/:id/complete", handlers.CompleteAppointmentHandler)
			appointmentRoutes.POST("/:id/no-show", handlers.NoShowAppointmentHandler)
			appointmentRoutes.POST("/:id/cancel", handlers.CancelAppointmentHandler)
			appointmentRoutes.GET("/:id/ics", handlers.AppointmentICSHandler)
		}

		// Agenda blocks (professionals and admins)
		blockRoutes := protected.Group("/blocks")
		blockRoutes.Use(middleware.RequireRole("admin", "professional"))
		{
			blockRoutes.GET("", handlers.ListBlocksHandler)
			blockRoutes.POST("", handlers.CreateBlockHandler)
			blockRoutes.GET("/overlap", handlers.CheckBlockOverlapHandler)
			blockRoutes.GET("/:id", handlers.GetBlockHandler)
			blockRoutes.PUT("/:id", handlers.UpdateBlockHandler)
			blockRoutes.DELETE("/:id", handlers.DeleteBlockHandler)
		}

		// Weekly working hours (professionals and admins)
		hoursRoutes := protected.Group("/working-hours")
		hoursRoutes.Use(middleware.RequireRole("admin", "professional"))
		{
			hoursRoutes.GET("", handlers.ListWorkingHoursHandler)
			hoursRoutes.GET("/schedule", handlers.WeekScheduleHandler)
			hoursRoutes.PUT("", handlers.SetWorkingHoursHandler)
			hoursRoutes.PUT("/deactivate", handlers.DeactivateWorkingHoursHandler)
			hoursRoutes.POST("/defaults", handlers.SeedDefaultWorkingHoursHandler)
		}

		// Agenda exports (staff only)
		exportRoutes := protected.Group("/exports")
		exportRoutes.Use(middleware.RequireRole("admin", "professional", "receptionist"))
		{
			exportRoutes.GET("/agenda/week.xlsx", handlers.ExportWeekAgendaXLSXHandler)
			exportRoutes.GET("/agenda/week.pdf", handlers.ExportWeekAgendaPDFHandler)
		}
	}

	// Background jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			// Clean up expired sessions
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}

			// Send appointment reminders for the upcoming window
			jobs.SendAppointmentReminders(db.DB, cfg)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
