package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DateBlock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;index;not null" json:"providerId"`
	Provider   Provider  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title     string    `gorm:"size:100;not null" json:"title"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	IsAllDay  bool      `gorm:"default:true" json:"isAllDay"`

	CreatedAt time.Time `json:"createdAt"`
}

func (d *DateBlock) BeforeCreate(_ *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}
