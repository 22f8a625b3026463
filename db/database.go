package db

import (
	"fmt"
	"log"

	"clinic_agenda_go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the agenda database. WAL mode keeps timeline reads from
// queueing behind booking writes; the busy timeout covers the remaining
// write-write contention between handlers and the reminder job.
func Initialize(dbPath string, environment string) error {
	var err error

	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Agenda database ready (WAL mode enabled)")
	return nil
}

// Migrate creates or updates the scheduling tables
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.WorkingHours{},
		&models.Block{},
		&models.Appointment{},
		&models.ErrorLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
