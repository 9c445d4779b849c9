package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Provider --------
	GetProviderByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Provider, error)

	GetProviderBySlug(
		ctx context.Context,
		slug string,
	) (*models.Provider, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		providerID uuid.UUID,
		serviceID uuid.UUID,
	) (*models.Service, error)

	// -------- Calendar --------
	ListAvailability(
		ctx context.Context,
		providerID uuid.UUID,
		weekday int,
	) ([]models.Availability, error)

	ListDateBlocks(
		ctx context.Context,
		providerID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.DateBlock, error)

	ListOccupyingAppointments(
		ctx context.Context,
		providerID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForProvider(
		ctx context.Context,
		appointmentID uuid.UUID,
		providerID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointments(
		ctx context.Context,
		providerID uuid.UUID,
		filter ListFilter,
	) ([]models.Appointment, error)

	// Transaction runs fn with the provider calendar locked, so the
	// check-then-insert of a booking cannot interleave with another.
	Transaction(
		ctx context.Context,
		providerID uuid.UUID,
		fn func(repo Repository) error,
	) error
}

// ListFilter bounds a listing to [From, To). Zero values mean unbounded.
type ListFilter struct {
	From time.Time
	To   time.Time
}
