package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
)

// loadCalendar fetches what is needed to judge [start, end) on the
// calendar day of start.
func loadCalendar(
	ctx context.Context,
	repo domain.Repository,
	providerID uuid.UUID,
	start time.Time,
	end time.Time,
) (domain.Calendar, error) {

	rules, err := repo.ListAvailability(ctx, providerID, int(start.Weekday()))
	if err != nil {
		return domain.Calendar{}, err
	}

	dayStart := timezone.StartOfDay(start)
	blocks, err := repo.ListDateBlocks(ctx, providerID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return domain.Calendar{}, err
	}

	appointments, err := repo.ListOccupyingAppointments(ctx, providerID, start, end)
	if err != nil {
		return domain.Calendar{}, err
	}

	return domain.Calendar{
		Rules:        rules,
		Blocks:       blocks,
		Appointments: appointments,
	}, nil
}
