package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

type fakeRepo struct {
	mu sync.Mutex

	providers    map[uuid.UUID]*models.Provider
	services     map[uuid.UUID]*models.Service
	rules        []models.Availability
	blocks       []models.DateBlock
	appointments []*models.Appointment

	// insertErr simulates the database refusing the row.
	insertErr error
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		providers: map[uuid.UUID]*models.Provider{},
		services:  map[uuid.UUID]*models.Service{},
	}
}

func (r *fakeRepo) GetProviderByID(_ context.Context, id uuid.UUID) (*models.Provider, error) {
	if p, ok := r.providers[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetProviderBySlug(_ context.Context, slug string) (*models.Provider, error) {
	for _, p := range r.providers {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetService(_ context.Context, providerID, serviceID uuid.UUID) (*models.Service, error) {
	s, ok := r.services[serviceID]
	if !ok || s.ProviderID != providerID {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) ListAvailability(_ context.Context, providerID uuid.UUID, weekday int) ([]models.Availability, error) {
	var out []models.Availability
	for _, a := range r.rules {
		if a.ProviderID == providerID && a.DayOfWeek == weekday {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListDateBlocks(_ context.Context, providerID uuid.UUID, start, end time.Time) ([]models.DateBlock, error) {
	var out []models.DateBlock
	for _, b := range r.blocks {
		if b.ProviderID == providerID && b.StartDate.Before(end) && !b.EndDate.Before(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListOccupyingAppointments(_ context.Context, providerID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProviderID != providerID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.AppointmentDate.Before(end) && ap.EndsAt.After(start) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	ap.CreatedAt = time.Now()
	cp := *ap
	r.appointments = append(r.appointments, &cp)
	return nil
}

func (r *fakeRepo) GetAppointmentForProvider(_ context.Context, appointmentID, providerID uuid.UUID) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.ProviderID == providerID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, cur := range r.appointments {
		if cur.ID == ap.ID {
			cp := *ap
			r.appointments[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRepo) ListAppointments(_ context.Context, providerID uuid.UUID, f domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProviderID != providerID {
			continue
		}
		if !f.From.IsZero() && ap.AppointmentDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !ap.AppointmentDate.Before(f.To) {
			continue
		}
		cp := *ap
		if s, ok := r.services[ap.ServiceID]; ok {
			cp.Service = *s
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentDate.After(out[j].AppointmentDate) })
	return out, nil
}

func (r *fakeRepo) Transaction(_ context.Context, _ uuid.UUID, fn func(domain.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r)
}

// -------- fixtures --------

// 2029-01-01 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2029, 1, 1, hour, min, 0, 0, time.UTC)
}

func seed(r *fakeRepo, price float64, minutes int) (*models.Provider, *models.Service) {
	p := &models.Provider{ID: uuid.New(), BusinessName: "Studio", Slug: "studio", IsActive: true}
	s := &models.Service{ID: uuid.New(), ProviderID: p.ID, Name: "Haircut", Price: price, Duration: minutes, IsActive: true}

	r.providers[p.ID] = p
	r.services[s.ID] = s
	r.rules = append(r.rules, models.Availability{
		ProviderID: p.ID,
		DayOfWeek:  int(time.Monday),
		StartTime:  "09:00",
		EndTime:    "18:00",
		IsEnabled:  true,
	})
	return p, s
}
