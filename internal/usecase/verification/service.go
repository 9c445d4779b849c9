package verification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/verification"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/mailer"
	"github.com/BruksfildServices01/booking-scheduler/internal/metrics"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/validators"
)

type Service struct {
	repo   domain.Repository
	mailer mailer.Sender
	now    func() time.Time
}

func NewService(repo domain.Repository, sender mailer.Sender) *Service {
	return &Service{
		repo:   repo,
		mailer: sender,
		now:    time.Now,
	}
}

// GenerateCode stores a fresh unused code for the user. Earlier codes are
// left untouched.
func (s *Service) GenerateCode(
	ctx context.Context,
	userID uuid.UUID,
	email string,
) (string, error) {

	code, err := domain.GenerateCode()
	if err != nil {
		return "", err
	}

	vc := &models.VerificationCode{
		UserID:    userID,
		Email:     validators.NormalizeEmail(email),
		Code:      code,
		ExpiresAt: s.now().Add(domain.CodeTTL),
	}

	if err := s.repo.CreateCode(ctx, vc); err != nil {
		return "", err
	}

	return code, nil
}

// SendVerification generates a code and emails it. A delivery failure
// returns false and leaves the stored code valid.
func (s *Service) SendVerification(
	ctx context.Context,
	userID uuid.UUID,
	email string,
	name string,
) bool {
	return s.send(ctx, userID, email, name, false)
}

func (s *Service) send(
	ctx context.Context,
	userID uuid.UUID,
	email string,
	name string,
	resend bool,
) bool {

	code, err := s.GenerateCode(ctx, userID, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate verification code", "user_id", userID, "error", err)
		return false
	}

	if err := s.mailer.Send(ctx, mailer.VerificationEmail(email, name, code, resend)); err != nil {
		slog.WarnContext(ctx, "failed to send verification email", "user_id", userID, "error", err)
		return false
	}

	return true
}

// VerifyCode checks the most recent code issued for email and, on
// success, consumes it and marks the owner verified.
func (s *Service) VerifyCode(
	ctx context.Context,
	email string,
	code string,
) (uuid.UUID, error) {

	vc, err := s.repo.LatestCodeByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		return uuid.Nil, err
	}

	if err := domain.Check(vc, code, s.now()); err != nil {
		metrics.VerificationAttempts.WithLabelValues(httperr.CodeOf(err)).Inc()
		return uuid.Nil, err
	}

	if err := s.repo.ConsumeCode(ctx, vc.ID, vc.UserID); err != nil {
		return uuid.Nil, err
	}

	metrics.VerificationAttempts.WithLabelValues("verified").Inc()
	return vc.UserID, nil
}

// ResendCode invalidates every code of the user and sends a new one. The
// user must exist and own email.
func (s *Service) ResendCode(
	ctx context.Context,
	userID uuid.UUID,
	email string,
	name string,
) (bool, error) {

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil || user.Email != validators.NormalizeEmail(email) {
		return false, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}

	if err := s.repo.InvalidateCodes(ctx, userID); err != nil {
		return false, err
	}

	return s.send(ctx, userID, email, name, true), nil
}

// Purge removes codes that stopped being usable more than a day ago.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	return s.repo.PurgeCodes(ctx, s.now().Add(-24*time.Hour))
}
