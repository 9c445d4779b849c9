package verification

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

const CodeTTL = 15 * time.Minute

// GenerateCode returns six uppercase hex characters drawn from three
// random bytes.
func GenerateCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// Check validates input against the stored code. Used and expired codes
// fail regardless of whether input matches.
func Check(vc *models.VerificationCode, input string, now time.Time) error {
	if vc == nil {
		return httperr.ErrBusiness(httperr.CodeVerificationNotFound)
	}
	if vc.Used {
		return httperr.ErrBusiness(httperr.CodeVerificationUsed)
	}
	if vc.ExpiresAt.Before(now) {
		return httperr.ErrBusiness(httperr.CodeVerificationExpired)
	}
	if strings.ToUpper(strings.TrimSpace(input)) != strings.ToUpper(vc.Code) {
		return httperr.ErrBusiness(httperr.CodeVerificationMismatch)
	}
	return nil
}

type Repository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	CreateCode(ctx context.Context, vc *models.VerificationCode) error

	// LatestCodeByEmail returns nil, nil when no code exists.
	LatestCodeByEmail(ctx context.Context, email string) (*models.VerificationCode, error)

	InvalidateCodes(ctx context.Context, userID uuid.UUID) error

	// ConsumeCode marks the code used and the owner verified atomically.
	ConsumeCode(ctx context.Context, codeID uuid.UUID, userID uuid.UUID) error

	// PurgeCodes deletes codes that expired or were used before cutoff.
	PurgeCodes(ctx context.Context, cutoff time.Time) (int64, error)
}
