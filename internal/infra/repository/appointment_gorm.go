package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProviderByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Provider, error) {

	var p models.Provider
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *AppointmentGormRepository) GetProviderBySlug(
	ctx context.Context,
	slug string,
) (*models.Provider, error) {

	var p models.Provider
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	providerID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", serviceID, providerID).
		First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAvailability(
	ctx context.Context,
	providerID uuid.UUID,
	weekday int,
) ([]models.Availability, error) {

	var rules []models.Availability
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND day_of_week = ? AND is_enabled = ?", providerID, weekday, true).
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// ListDateBlocks returns blocks that may touch [start, end). All-day
// blocks are stored at day granularity, so end_date is compared
// inclusively.
func (r *AppointmentGormRepository) ListDateBlocks(
	ctx context.Context,
	providerID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.DateBlock, error) {

	var blocks []models.DateBlock
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND start_date < ? AND end_date >= ?", providerID, end, start).
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *AppointmentGormRepository) ListOccupyingAppointments(
	ctx context.Context,
	providerID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND status <> ? AND appointment_date < ? AND ends_at > ?",
			providerID,
			string(domain.StatusCancelled),
			end,
			start,
		).
		Order("appointment_date ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointmentForProvider(
	ctx context.Context,
	appointmentID uuid.UUID,
	providerID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", appointmentID, providerID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	providerID uuid.UUID,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where("provider_id = ?", providerID)

	if !filter.From.IsZero() {
		q = q.Where("appointment_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("appointment_date < ?", filter.To)
	}

	order := "appointment_date DESC"
	if !filter.From.IsZero() {
		order = "appointment_date ASC"
	}

	var apps []models.Appointment
	if err := q.Order(order).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

// Transaction locks the provider row for the duration of fn. Concurrent
// bookings for the same provider queue on that lock.
func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	providerID uuid.UUID,
	fn func(repo domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Provider
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", providerID).
			First(&p).Error; err != nil {
			return notFound(err)
		}

		return fn(&AppointmentGormRepository{db: tx})
	})
}
