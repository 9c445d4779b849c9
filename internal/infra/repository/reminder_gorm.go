package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

type ReminderGormRepository struct {
	db *gorm.DB
}

func NewReminderGormRepository(db *gorm.DB) *ReminderGormRepository {
	return &ReminderGormRepository{db: db}
}

// DueReminders returns confirmed appointments starting in [from, to)
// that have a client email and no reminder yet.
func (r *ReminderGormRepository) DueReminders(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Provider").
		Preload("Service").
		Where(
			"status = ? AND reminder_sent_at IS NULL AND client_email <> '' AND appointment_date >= ? AND appointment_date < ?",
			string(domain.StatusConfirmed),
			from,
			to,
		).
		Order("appointment_date ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ReminderGormRepository) MarkReminderSent(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminder_sent_at", at).Error
}
