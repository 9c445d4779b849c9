package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Provider struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BusinessName    string `gorm:"size:100;not null" json:"businessName"`
	Slug            string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description     string `gorm:"type:text" json:"description"`
	Category        string `gorm:"size:50" json:"category"`
	Address         string `gorm:"size:255" json:"address"`
	Phone           string `gorm:"size:20" json:"phone"`
	ProfileImageURL string `gorm:"size:512" json:"profileImageUrl"`
	IsActive        bool   `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Provider) BeforeCreate(_ *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
