package appointment

import (
	"time"

	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

// Window returns the half-open interval occupied by ap.
func Window(ap models.Appointment) (time.Time, time.Time) {
	start := ap.AppointmentDate
	end := ap.EndsAt
	if end.IsZero() {
		end = start.Add(time.Duration(ap.Duration) * time.Minute)
	}
	return start, end
}
