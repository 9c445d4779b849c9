package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/dto"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
)

// ListQuery selects either a single day, a calendar month, or everything.
// Date wins over Year/Month when both are given.
type ListQuery struct {
	Date  string
	Year  int
	Month int
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	providerID uuid.UUID,
	q ListQuery,
) ([]dto.AppointmentListDTO, error) {

	filter, err := q.filter()
	if err != nil {
		return nil, err
	}

	list, err := uc.repo.ListAppointments(ctx, providerID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(list))
	for _, ap := range list {
		out = append(out, dto.AppointmentListDTO{
			ID:              ap.ID,
			ServiceID:       ap.ServiceID,
			ServiceName:     ap.Service.Name,
			ClientName:      ap.ClientName,
			ClientPhone:     ap.ClientPhone,
			ClientEmail:     ap.ClientEmail,
			AppointmentDate: ap.AppointmentDate,
			EndsAt:          ap.EndsAt,
			Duration:        ap.Duration,
			Price:           ap.Price,
			Status:          ap.Status,
			Notes:           ap.Notes,
			ConfirmedAt:     ap.ConfirmedAt,
			CancelledAt:     ap.CancelledAt,
			CompletedAt:     ap.CompletedAt,
			CreatedAt:       ap.CreatedAt,
		})
	}
	return out, nil
}

func (q ListQuery) filter() (domain.ListFilter, error) {
	if q.Date != "" {
		day, err := timezone.ParseDate(q.Date)
		if err != nil {
			return domain.ListFilter{}, httperr.ErrBusiness(httperr.CodeValidation)
		}
		return domain.ListFilter{From: day, To: day.AddDate(0, 0, 1)}, nil
	}

	if q.Year != 0 || q.Month != 0 {
		if q.Year < 1 || q.Month < 1 || q.Month > 12 {
			return domain.ListFilter{}, httperr.ErrBusiness(httperr.CodeValidation)
		}
		from := time.Date(q.Year, time.Month(q.Month), 1, 0, 0, 0, 0, timezone.Location())
		return domain.ListFilter{From: from, To: from.AddDate(0, 1, 0)}, nil
	}

	return domain.ListFilter{}, nil
}
