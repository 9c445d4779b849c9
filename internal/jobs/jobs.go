package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/booking-scheduler/internal/mailer"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

const (
	PurgeSpec    = "@every 1h"
	ReminderSpec = "* * * * *"

	reminderSlack = 5 * time.Minute
	jobTimeout    = 30 * time.Second
)

type CodePurger interface {
	Purge(ctx context.Context) (int64, error)
}

type ReminderRepository interface {
	DueReminders(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ======================================================
// SCHEDULER
// ======================================================

type Scheduler struct {
	cron *cron.Cron

	purger    CodePurger
	reminders ReminderRepository
	mailer    mailer.Sender
	lead      time.Duration
	now       func() time.Time
}

func NewScheduler(
	purger CodePurger,
	reminders ReminderRepository,
	sender mailer.Sender,
	lead time.Duration,
) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		purger:    purger,
		reminders: reminders,
		mailer:    sender,
		lead:      lead,
		now:       time.Now,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(PurgeSpec, s.purgeCodes); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(ReminderSpec, s.sendReminders); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("job scheduler started", "purge", PurgeSpec, "reminders", ReminderSpec)
	return nil
}

// Stop waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// ======================================================
// JOBS
// ======================================================

func (s *Scheduler) purgeCodes() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.purger.Purge(ctx)
	if err != nil {
		slog.Error("verification code purge failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("verification codes purged", "count", n)
	}
}

func (s *Scheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.RunReminders(ctx)
}

// RunReminders emails clients whose confirmed appointment starts about
// lead from now. Each appointment is reminded at most once.
func (s *Scheduler) RunReminders(ctx context.Context) int {
	now := s.now()
	from := now.Add(s.lead - reminderSlack)
	to := now.Add(s.lead + reminderSlack)

	due, err := s.reminders.DueReminders(ctx, from, to)
	if err != nil {
		slog.Error("loading due reminders failed", "error", err)
		return 0
	}

	sent := 0
	for _, ap := range due {
		msg := mailer.AppointmentReminderEmail(mailer.AppointmentDetails{
			To:       ap.ClientEmail,
			Client:   ap.ClientName,
			Business: ap.Provider.BusinessName,
			Service:  ap.Service.Name,
			When:     ap.AppointmentDate,
			Duration: ap.Duration,
			Price:    ap.Price,
		})

		if err := s.mailer.Send(ctx, msg); err != nil {
			slog.Warn("reminder delivery failed", "appointment_id", ap.ID, "error", err)
			continue
		}
		if err := s.reminders.MarkReminderSent(ctx, ap.ID, now); err != nil {
			slog.Error("marking reminder failed", "appointment_id", ap.ID, "error", err)
			continue
		}
		sent++
	}
	return sent
}
