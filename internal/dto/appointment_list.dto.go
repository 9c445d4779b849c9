package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID              uuid.UUID  `json:"id"`
	ServiceID       uuid.UUID  `json:"serviceId"`
	ServiceName     string     `json:"serviceName"`
	ClientName      string     `json:"clientName"`
	ClientPhone     string     `json:"clientPhone"`
	ClientEmail     string     `json:"clientEmail"`
	AppointmentDate time.Time  `json:"appointmentDate"`
	EndsAt          time.Time  `json:"endsAt"`
	Duration        int        `json:"duration"`
	Price           float64    `json:"price"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
	ConfirmedAt     *time.Time `json:"confirmedAt"`
	CancelledAt     *time.Time `json:"cancelledAt"`
	CompletedAt     *time.Time `json:"completedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}
