package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
	"github.com/BruksfildServices01/booking-scheduler/internal/validators"
)

type GetAvailability struct {
	repo domain.Repository
	step time.Duration
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository, step time.Duration) *GetAvailability {
	return &GetAvailability{repo: repo, step: step, now: time.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	provider, err := uc.repo.GetProviderBySlug(ctx, validators.NormalizeSlug(in.Slug))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeSlugNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !provider.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeSlugNotFound)
	}

	service, err := uc.repo.GetService(ctx, provider.ID, in.ServiceID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return []domain.TimeSlot{}, nil
	}

	day := timezone.StartOfDay(in.Date)
	cal, err := loadCalendar(ctx, uc.repo, provider.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(
		day,
		time.Duration(service.Duration)*time.Minute,
		uc.step,
		uc.now(),
		cal,
	), nil
}
