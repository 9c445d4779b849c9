package db

import (
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-scheduler/internal/config"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

// Non-cancelled appointments of the same provider may not overlap.
// Ranges are half-open so back-to-back bookings are accepted.
const appointmentOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
	) THEN
		ALTER TABLE appointments
		ADD CONSTRAINT appointments_no_overlap
		EXCLUDE USING gist (
			provider_id WITH =,
			tstzrange(appointment_date, ends_at, '[)') WITH &&
		) WHERE (status <> 'cancelled');
	END IF;
END
$$;
`

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		fatal("failed to connect database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		fatal("failed to get sql.DB", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		fatal("failed to migrate", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.VerificationCode{},
		&models.Provider{},
		&models.Service{},
		&models.Availability{},
		&models.DateBlock{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(appointmentOverlapConstraint).Error
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
