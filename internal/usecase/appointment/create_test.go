package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/mailer"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type outbox struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (o *outbox) Send(_ context.Context, msg mailer.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msg)
	return nil
}

func newCreate(repo *fakeRepo) (*CreateAppointment, *recorder, *outbox) {
	rec := &recorder{}
	box := &outbox{}
	uc := NewCreateAppointment(repo, rec, box)
	uc.now = func() time.Time { return monday(8, 0) }
	return uc, rec, box
}

func input(p *models.Provider, s *models.Service, start time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		ProviderID:      p.ID,
		ServiceID:       s.ID,
		ClientName:      "Ana",
		ClientPhone:     "555-0101",
		ClientEmail:     "ana@example.com",
		AppointmentDate: start,
	}
}

func TestCreateAppointment_SnapshotsService(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 80, 45)
	uc, rec, box := newCreate(repo)

	in := input(p, s, monday(10, 0))
	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	require.Equal(t, 80.0, ap.Price)
	require.Equal(t, 45, ap.Duration)
	require.Equal(t, monday(10, 45), ap.EndsAt)
	require.Equal(t, string(domain.StatusPending), ap.Status)
	require.Equal(t, []string{"appointment_created"}, rec.actions())
	require.Len(t, box.sent, 1)
	require.Equal(t, "ana@example.com", box.sent[0].To)

	// later price changes never touch the stored booking
	repo.services[s.ID].Price = 100
	stored, err := repo.GetAppointmentForProvider(context.Background(), ap.ID, p.ID)
	require.NoError(t, err)
	require.Equal(t, 80.0, stored.Price)
}

func TestCreateAppointment_RejectsOverlap(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 60)
	uc, rec, _ := newCreate(repo)

	_, err := uc.Execute(context.Background(), input(p, s, monday(10, 0)))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), input(p, s, monday(10, 30)))
	require.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
	require.Equal(t, domain.ReasonTimeConflict, domain.ReasonOf(err))
	require.Contains(t, rec.actions(), "appointment_conflict")

	// back-to-back is fine
	_, err = uc.Execute(context.Background(), input(p, s, monday(11, 0)))
	require.NoError(t, err)
}

func TestCreateAppointment_CancelledFreesSlot(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 60)
	uc, _, _ := newCreate(repo)

	first, err := uc.Execute(context.Background(), input(p, s, monday(10, 0)))
	require.NoError(t, err)
	repo.appointments[0].Status = string(domain.StatusCancelled)

	second, err := uc.Execute(context.Background(), input(p, s, monday(10, 0)))
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestCreateAppointment_ValidationOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown provider", func(t *testing.T) {
		repo := newFakeRepo()
		_, s := seed(repo, 50, 30)
		uc, _, _ := newCreate(repo)

		_, err := uc.Execute(ctx, input(&models.Provider{ID: uuid.New()}, s, monday(10, 0)))
		require.True(t, httperr.IsBusiness(err, httperr.CodeProviderNotFound))
	})

	t.Run("inactive provider", func(t *testing.T) {
		repo := newFakeRepo()
		p, s := seed(repo, 50, 30)
		p.IsActive = false
		uc, _, _ := newCreate(repo)

		_, err := uc.Execute(ctx, input(p, s, monday(10, 0)))
		require.True(t, httperr.IsBusiness(err, httperr.CodeProviderOff))
	})

	t.Run("missing client name", func(t *testing.T) {
		repo := newFakeRepo()
		p, s := seed(repo, 50, 30)
		uc, _, _ := newCreate(repo)

		in := input(p, s, monday(10, 0))
		in.ClientName = "  "
		_, err := uc.Execute(ctx, in)
		require.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
	})

	t.Run("bad email", func(t *testing.T) {
		repo := newFakeRepo()
		p, s := seed(repo, 50, 30)
		uc, _, _ := newCreate(repo)

		in := input(p, s, monday(10, 0))
		in.ClientEmail = "not-an-email"
		_, err := uc.Execute(ctx, in)
		require.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
	})

	t.Run("completed is not an initial status", func(t *testing.T) {
		repo := newFakeRepo()
		p, s := seed(repo, 50, 30)
		uc, _, _ := newCreate(repo)

		in := input(p, s, monday(10, 0))
		in.Status = domain.StatusCompleted
		_, err := uc.Execute(ctx, in)
		require.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
	})

	t.Run("in the past", func(t *testing.T) {
		repo := newFakeRepo()
		p, s := seed(repo, 50, 30)
		uc, _, _ := newCreate(repo)

		_, err := uc.Execute(ctx, input(p, s, monday(7, 0)))
		require.True(t, httperr.IsBusiness(err, httperr.CodeInPast))
	})

	t.Run("service of another provider", func(t *testing.T) {
		repo := newFakeRepo()
		p, _ := seed(repo, 50, 30)
		other, foreign := seed(repo, 50, 30)
		other.Slug = "other"
		uc, _, _ := newCreate(repo)

		_, err := uc.Execute(ctx, input(p, foreign, monday(10, 0)))
		require.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
	})

	t.Run("inactive service", func(t *testing.T) {
		repo := newFakeRepo()
		p, s := seed(repo, 50, 30)
		repo.services[s.ID].IsActive = false
		uc, _, _ := newCreate(repo)

		_, err := uc.Execute(ctx, input(p, s, monday(10, 0)))
		require.True(t, httperr.IsBusiness(err, httperr.CodeServiceOff))
	})
}

func TestCreateAppointment_OutsideHoursAndBlocks(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 60)
	uc, _, _ := newCreate(repo)

	_, err := uc.Execute(context.Background(), input(p, s, monday(17, 30)))
	require.Equal(t, domain.ReasonOutsideAvailability, domain.ReasonOf(err))

	repo.blocks = append(repo.blocks, models.DateBlock{
		ProviderID: p.ID,
		Title:      "Holiday",
		StartDate:  monday(0, 0),
		EndDate:    monday(0, 0),
		IsAllDay:   true,
	})
	_, err = uc.Execute(context.Background(), input(p, s, monday(10, 0)))
	require.Equal(t, domain.ReasonDateBlocked, domain.ReasonOf(err))
}

func TestCreateAppointment_PublicIsAlwaysPending(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 30)
	uc, _, _ := newCreate(repo)

	in := input(p, s, monday(10, 0))
	in.ProviderID = uuid.Nil
	in.Slug = "Studio"
	in.Status = domain.StatusConfirmed

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusPending), ap.Status)
	require.Equal(t, p.ID, ap.ProviderID)
}

func TestCreateAppointment_DashboardMayConfirm(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 30)
	uc, _, _ := newCreate(repo)

	in := input(p, s, monday(10, 0))
	in.Status = domain.StatusConfirmed

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
}

func TestCreateAppointment_ExclusionViolationIsConflict(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 30)
	repo.insertErr = &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}
	uc, _, _ := newCreate(repo)

	_, err := uc.Execute(context.Background(), input(p, s, monday(10, 0)))
	require.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
	require.Equal(t, domain.ReasonTimeConflict, domain.ReasonOf(err))
}

func TestCreateAppointment_MailFailureDoesNotFailBooking(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 30)
	uc, _, box := newCreate(repo)
	box.err = errors.New("smtp down")

	_, err := uc.Execute(context.Background(), input(p, s, monday(10, 0)))
	require.NoError(t, err)
	require.Len(t, repo.appointments, 1)
}

func TestCreateAppointment_ConcurrentRequestsSingleWinner(t *testing.T) {
	repo := newFakeRepo()
	p, s := seed(repo, 50, 60)
	uc, _, _ := newCreate(repo)

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Execute(context.Background(), input(p, s, monday(10, 0))); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)
}
