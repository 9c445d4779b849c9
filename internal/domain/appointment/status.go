package appointment

import "github.com/BruksfildServices01/booking-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// ===============================
// Validations
// ===============================

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal statuses accept no further changes.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Occupies reports whether an appointment in this status holds its slot.
func (s Status) Occupies() bool {
	return s != StatusCancelled
}

// CanTransition validates a lifecycle move. Staying in the same status is
// not a transition.
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidTransit)
}

// InitialStatus resolves the status of a new appointment. Only pending and
// confirmed are accepted at creation; empty means pending.
func InitialStatus(requested Status) (Status, error) {
	switch requested {
	case "":
		return StatusPending, nil
	case StatusPending, StatusConfirmed:
		return requested, nil
	}
	return "", httperr.ErrBusiness(httperr.CodeValidation)
}
