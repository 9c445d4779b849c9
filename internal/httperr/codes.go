package httperr

import "net/http"

const (
	CodeInvalidRequest  = "invalid_request"
	CodeValidation      = "validation_error"
	CodeInternal        = "internal_error"
	CodeUnauthorized    = "unauthorized"
	CodeBadCredentials  = "invalid_credentials"
	CodeNotConfigured   = "not_configured"
	CodeInPast          = "appointment_in_past"
	CodeProviderOff     = "provider_inactive"
	CodeServiceOff      = "service_inactive"
	CodeSlotUnavailable = "slot_unavailable"
	CodeInvalidTransit  = "invalid_transition"

	CodeUserNotFound         = "user_not_found"
	CodeProviderNotFound     = "provider_not_found"
	CodeServiceNotFound      = "service_not_found"
	CodeSlugNotFound         = "slug_not_found"
	CodeAppointmentNotFound  = "appointment_not_found"
	CodeAvailabilityNotFound = "availability_not_found"
	CodeDateBlockNotFound    = "date_block_not_found"

	CodeEmailExists    = "email_already_exists"
	CodeSlugExists     = "slug_already_exists"
	CodeProviderExists = "provider_already_exists"

	CodeVerificationNotFound = "code_not_found"
	CodeVerificationUsed     = "code_already_used"
	CodeVerificationExpired  = "code_expired"
	CodeVerificationMismatch = "code_mismatch"
)

var statusByCode = map[string]int{
	CodeInvalidRequest: http.StatusBadRequest,
	CodeValidation:     http.StatusBadRequest,
	CodeInPast:         http.StatusBadRequest,
	CodeProviderOff:    http.StatusBadRequest,
	CodeServiceOff:     http.StatusBadRequest,

	CodeVerificationNotFound: http.StatusBadRequest,
	CodeVerificationUsed:     http.StatusBadRequest,
	CodeVerificationExpired:  http.StatusBadRequest,
	CodeVerificationMismatch: http.StatusBadRequest,

	CodeUnauthorized:   http.StatusUnauthorized,
	CodeBadCredentials: http.StatusUnauthorized,

	CodeUserNotFound:         http.StatusNotFound,
	CodeProviderNotFound:     http.StatusNotFound,
	CodeServiceNotFound:      http.StatusNotFound,
	CodeSlugNotFound:         http.StatusNotFound,
	CodeAppointmentNotFound:  http.StatusNotFound,
	CodeAvailabilityNotFound: http.StatusNotFound,
	CodeDateBlockNotFound:    http.StatusNotFound,

	CodeEmailExists:     http.StatusConflict,
	CodeSlugExists:      http.StatusConflict,
	CodeProviderExists:  http.StatusConflict,
	CodeSlotUnavailable: http.StatusConflict,
	CodeInvalidTransit:  http.StatusConflict,

	CodeNotConfigured: http.StatusServiceUnavailable,
}

var messageByCode = map[string]string{
	CodeInvalidRequest:  "Invalid request data.",
	CodeValidation:      "Missing or invalid fields.",
	CodeInPast:          "Appointment date must be in the future.",
	CodeProviderOff:     "Provider is not accepting bookings.",
	CodeServiceOff:      "Service is not available.",
	CodeSlotUnavailable: "Requested time slot is not available.",
	CodeInvalidTransit:  "Appointment status change not allowed.",

	CodeVerificationNotFound: "Verification code not found.",
	CodeVerificationUsed:     "Verification code already used.",
	CodeVerificationExpired:  "Verification code expired.",
	CodeVerificationMismatch: "Incorrect verification code.",

	CodeUnauthorized:   "Unauthorized.",
	CodeBadCredentials: "Invalid credentials.",

	CodeUserNotFound:         "User not found.",
	CodeProviderNotFound:     "Provider not found.",
	CodeServiceNotFound:      "Service not found.",
	CodeSlugNotFound:         "Provider not found.",
	CodeAppointmentNotFound:  "Appointment not found.",
	CodeAvailabilityNotFound: "Availability rule not found.",
	CodeDateBlockNotFound:    "Date block not found.",

	CodeEmailExists:    "User already exists.",
	CodeSlugExists:     "This URL name is already in use.",
	CodeProviderExists: "A provider profile already exists for this account.",

	CodeNotConfigured: "Feature not configured.",
	CodeInternal:      "Internal server error.",
}

// StatusFor maps a business code to its HTTP status. Unknown codes are
// internal errors.
func StatusFor(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func MessageFor(code string) string {
	if m, ok := messageByCode[code]; ok {
		return m
	}
	return messageByCode[CodeInternal]
}
