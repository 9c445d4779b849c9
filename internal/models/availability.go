package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is a recurring weekly opening window. DayOfWeek follows
// time.Weekday (0 = Sunday). Times are "HH:MM" wall-clock strings.
type Availability struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;index:idx_availability_provider_day;not null" json:"providerId"`
	Provider   Provider  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DayOfWeek int    `gorm:"index:idx_availability_provider_day;not null" json:"dayOfWeek"`
	StartTime string `gorm:"size:5;not null" json:"startTime"`
	EndTime   string `gorm:"size:5;not null" json:"endTime"`
	IsEnabled bool   `gorm:"default:true" json:"isEnabled"`

	CreatedAt time.Time `json:"createdAt"`
}

func (a *Availability) BeforeCreate(_ *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
