package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

func bookedFor(repo *fakeRepo, p *models.Provider, s *models.Service, status domain.Status) *models.Appointment {
	ap := &models.Appointment{
		ID:              uuid.New(),
		ProviderID:      p.ID,
		ServiceID:       s.ID,
		ClientName:      "Ana",
		ClientPhone:     "555",
		AppointmentDate: monday(10, 0),
		EndsAt:          monday(10, 30),
		Duration:        30,
		Price:           s.Price,
		Status:          string(status),
	}
	repo.appointments = append(repo.appointments, ap)
	return ap
}

func ptr[T any](v T) *T { return &v }

func newUpdate(repo *fakeRepo) (*UpdateAppointment, *recorder) {
	rec := &recorder{}
	uc := NewUpdateAppointment(repo, rec)
	uc.now = func() time.Time { return monday(9, 0) }
	return uc, rec
}

func TestUpdateAppointment_Lifecycle(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 30)
	ap := bookedFor(repo, p, s, domain.StatusPending)
	uc, rec := newUpdate(repo)
	ctx := context.Background()

	got, err := uc.Execute(ctx, UpdateAppointmentInput{
		ProviderID:    p.ID,
		AppointmentID: ap.ID,
		Status:        ptr(domain.StatusConfirmed),
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusConfirmed), got.Status)
	require.NotNil(t, got.ConfirmedAt)

	got, err = uc.Execute(ctx, UpdateAppointmentInput{
		ProviderID:    p.ID,
		AppointmentID: ap.ID,
		Status:        ptr(domain.StatusCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)

	_, err = uc.Execute(ctx, UpdateAppointmentInput{
		ProviderID:    p.ID,
		AppointmentID: ap.ID,
		Status:        ptr(domain.StatusCancelled),
	})
	require.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransit))

	require.Equal(t, []string{"appointment_status_changed", "appointment_status_changed"}, rec.actions())
}

func TestUpdateAppointment_RejectsPendingToCompleted(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 30)
	ap := bookedFor(repo, p, s, domain.StatusPending)
	uc, _ := newUpdate(repo)

	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		ProviderID:    p.ID,
		AppointmentID: ap.ID,
		Status:        ptr(domain.StatusCompleted),
	})
	require.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransit))
	require.Equal(t, string(domain.StatusPending), repo.appointments[0].Status)
}

func TestUpdateAppointment_UnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 30)
	ap := bookedFor(repo, p, s, domain.StatusPending)
	uc, _ := newUpdate(repo)

	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		ProviderID:    p.ID,
		AppointmentID: ap.ID,
		Status:        ptr(domain.Status("archived")),
	})
	require.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestUpdateAppointment_NotesAndOwnership(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 30)
	ap := bookedFor(repo, p, s, domain.StatusPending)
	uc, rec := newUpdate(repo)
	ctx := context.Background()

	got, err := uc.Execute(ctx, UpdateAppointmentInput{
		ProviderID:    p.ID,
		AppointmentID: ap.ID,
		Notes:         ptr("  bring photos "),
	})
	require.NoError(t, err)
	require.Equal(t, "bring photos", got.Notes)

	// same status is a no-op
	_, err = uc.Execute(ctx, UpdateAppointmentInput{
		ProviderID:    p.ID,
		AppointmentID: ap.ID,
		Status:        ptr(domain.StatusPending),
	})
	require.NoError(t, err)
	require.Len(t, rec.actions(), 1)

	_, err = uc.Execute(ctx, UpdateAppointmentInput{
		ProviderID:    uuid.New(),
		AppointmentID: ap.ID,
		Notes:         ptr("x"),
	})
	require.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestUpdateAppointment_TerminalNotesAreFrozen(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 30)
	ap := bookedFor(repo, p, s, domain.StatusCancelled)
	uc, _ := newUpdate(repo)

	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		ProviderID:    p.ID,
		AppointmentID: ap.ID,
		Notes:         ptr("late edit"),
	})
	require.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransit))
}
