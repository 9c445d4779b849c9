package appointment

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/mailer"
	"github.com/BruksfildServices01/booking-scheduler/internal/metrics"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/validators"
)

const (
	ChannelDashboard = "dashboard"
	ChannelPublic    = "public"
)

// ======================================================
// INPUT
// ======================================================

// CreateAppointmentInput identifies the provider either by ID (dashboard)
// or by Slug (public page). Price and duration are never taken from the
// caller.
type CreateAppointmentInput struct {
	ProviderID uuid.UUID
	Slug       string
	ActorID    *uuid.UUID

	ServiceID uuid.UUID

	ClientName  string
	ClientPhone string
	ClientEmail string

	AppointmentDate time.Time
	Notes           string
	Status          domain.Status
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	audit  audit.Recorder
	mailer mailer.Sender
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	sender mailer.Sender,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		audit:  audit,
		mailer: sender,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Provider
	// --------------------------------------------------
	provider, channel, err := uc.resolveProvider(ctx, in)
	if err != nil {
		return nil, err
	}
	if !provider.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeProviderOff)
	}

	// --------------------------------------------------
	// 2. Request fields
	// --------------------------------------------------
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ClientEmail = validators.NormalizeEmail(in.ClientEmail)

	if in.ClientName == "" || in.ClientPhone == "" || in.AppointmentDate.IsZero() {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if in.ClientEmail != "" && !validators.IsEmail(in.ClientEmail) {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	status := domain.StatusPending
	if channel == ChannelDashboard {
		if status, err = domain.InitialStatus(in.Status); err != nil {
			return nil, err
		}
	}

	start := in.AppointmentDate
	if !start.After(uc.now()) {
		return nil, httperr.ErrBusiness(httperr.CodeInPast)
	}

	// --------------------------------------------------
	// 3. Service snapshot
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, provider.ID, in.ServiceID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeServiceOff)
	}

	duration := time.Duration(service.Duration) * time.Minute
	end := start.Add(duration)

	ap := &models.Appointment{
		ProviderID:      provider.ID,
		ServiceID:       service.ID,
		ClientName:      in.ClientName,
		ClientPhone:     in.ClientPhone,
		ClientEmail:     in.ClientEmail,
		AppointmentDate: start,
		EndsAt:          end,
		Duration:        service.Duration,
		Price:           service.Price,
		Status:          string(status),
		Notes:           strings.TrimSpace(in.Notes),
	}
	if status == domain.StatusConfirmed {
		now := uc.now()
		ap.ConfirmedAt = &now
	}

	// --------------------------------------------------
	// 4. Availability check + insert, serialized per provider
	// --------------------------------------------------
	err = uc.repo.Transaction(ctx, provider.ID, func(tx domain.Repository) error {
		cal, err := loadCalendar(ctx, tx, provider.ID, start, end)
		if err != nil {
			return err
		}
		if err := domain.CheckSlot(start, duration, cal); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, ap)
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			err = domain.UnavailableError{Reason: domain.ReasonTimeConflict}
		}
		if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			uc.rejected(provider.ID, in.ActorID, start, end, domain.ReasonOf(err))
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5. Side effects
	// --------------------------------------------------
	metrics.BookingsCreated.WithLabelValues(channel).Inc()

	uc.audit.Dispatch(audit.Event{
		ProviderID: provider.ID,
		UserID:     in.ActorID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]any{"channel": channel, "status": ap.Status},
	})

	uc.notifyClient(ctx, provider, service, ap)

	return ap, nil
}

func (uc *CreateAppointment) resolveProvider(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Provider, string, error) {

	if in.Slug != "" {
		p, err := uc.repo.GetProviderBySlug(ctx, validators.NormalizeSlug(in.Slug))
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", httperr.ErrBusiness(httperr.CodeSlugNotFound)
		}
		return p, ChannelPublic, err
	}

	p, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", httperr.ErrBusiness(httperr.CodeProviderNotFound)
	}
	return p, ChannelDashboard, err
}

func (uc *CreateAppointment) rejected(
	providerID uuid.UUID,
	actorID *uuid.UUID,
	start time.Time,
	end time.Time,
	reason string,
) {
	metrics.BookingRejections.WithLabelValues(reason).Inc()

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		UserID:     actorID,
		Action:     "appointment_conflict",
		Entity:     "appointment",
		Metadata: map[string]any{
			"start":  start,
			"end":    end,
			"reason": reason,
		},
	})
}

func (uc *CreateAppointment) notifyClient(
	ctx context.Context,
	provider *models.Provider,
	service *models.Service,
	ap *models.Appointment,
) {
	if ap.ClientEmail == "" {
		return
	}

	msg := mailer.AppointmentReceivedEmail(mailer.AppointmentDetails{
		To:       ap.ClientEmail,
		Client:   ap.ClientName,
		Business: provider.BusinessName,
		Service:  service.Name,
		When:     ap.AppointmentDate,
		Duration: ap.Duration,
		Price:    ap.Price,
	})

	if err := uc.mailer.Send(ctx, msg); err != nil {
		slog.WarnContext(ctx, "failed to send appointment email",
			"appointment_id", ap.ID,
			"error", err,
		)
	}
}
