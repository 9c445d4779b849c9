package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

type UpdateAppointmentInput struct {
	ProviderID    uuid.UUID
	AppointmentID uuid.UUID
	ActorID       *uuid.UUID

	Status *domain.Status
	Notes  *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
	now   func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit audit.Recorder,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute applies a status change and/or a notes edit. Resending the
// current status is a no-op; finished appointments are read-only.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProvider(ctx, in.AppointmentID, in.ProviderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if err != nil {
		return nil, err
	}

	from := domain.Status(ap.Status)
	changed := false

	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		if notes != ap.Notes {
			if from.Terminal() {
				return nil, httperr.ErrBusiness(httperr.CodeInvalidTransit)
			}
			ap.Notes = notes
			changed = true
		}
	}

	if in.Status != nil && *in.Status != from {
		if err := domain.Transition(ap, *in.Status, uc.now()); err != nil {
			return nil, err
		}
		changed = true
	}

	if !changed {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		UserID:     in.ActorID,
		Action:     "appointment_status_changed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]any{"from": from, "to": ap.Status},
	})

	return ap, nil
}
