package dto

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

// PublicProviderDTO is the only provider shape exposed without a session.
type PublicProviderDTO struct {
	ID              uuid.UUID `json:"id"`
	BusinessName    string    `json:"businessName"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	ProfileImageURL string    `json:"profileImageUrl"`
}

func PublicProvider(p *models.Provider) PublicProviderDTO {
	return PublicProviderDTO{
		ID:              p.ID,
		BusinessName:    p.BusinessName,
		Slug:            p.Slug,
		Description:     p.Description,
		Category:        p.Category,
		Address:         p.Address,
		Phone:           p.Phone,
		ProfileImageURL: p.ProfileImageURL,
	}
}

type PublicServiceDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"`
}

func PublicServices(list []models.Service) []PublicServiceDTO {
	out := make([]PublicServiceDTO, 0, len(list))
	for _, s := range list {
		out = append(out, PublicServiceDTO{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			Duration:    s.Duration,
		})
	}
	return out
}
