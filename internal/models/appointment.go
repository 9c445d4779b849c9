package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment keeps Price and Duration as a snapshot of the Service at
// booking time. EndsAt is derived from AppointmentDate + Duration.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProviderID uuid.UUID `gorm:"type:uuid;index;not null" json:"providerId"`
	Provider   Provider  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	Service   Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientName  string `gorm:"size:100;not null" json:"clientName"`
	ClientPhone string `gorm:"size:20;not null" json:"clientPhone"`
	ClientEmail string `gorm:"size:100" json:"clientEmail"`

	AppointmentDate time.Time `gorm:"index;not null" json:"appointmentDate"`
	EndsAt          time.Time `gorm:"not null" json:"endsAt"`
	Duration        int       `gorm:"not null" json:"duration"`
	Price           float64   `gorm:"type:numeric(10,2);not null" json:"price"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	ConfirmedAt    *time.Time `json:"confirmedAt"`
	CancelledAt    *time.Time `json:"cancelledAt"`
	CompletedAt    *time.Time `json:"completedAt"`
	ReminderSentAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
