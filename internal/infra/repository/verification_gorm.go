package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-scheduler/internal/domain/verification"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

type VerificationGormRepository struct {
	db *gorm.DB
}

func NewVerificationGormRepository(db *gorm.DB) *VerificationGormRepository {
	return &VerificationGormRepository{db: db}
}

var _ verification.Repository = (*VerificationGormRepository)(nil)

func (r *VerificationGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *VerificationGormRepository) CreateCode(
	ctx context.Context,
	vc *models.VerificationCode,
) error {
	return r.db.WithContext(ctx).Omit("User").Create(vc).Error
}

func (r *VerificationGormRepository) LatestCodeByEmail(
	ctx context.Context,
	email string,
) (*models.VerificationCode, error) {

	var vc models.VerificationCode
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&vc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vc, nil
}

func (r *VerificationGormRepository) InvalidateCodes(
	ctx context.Context,
	userID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Model(&models.VerificationCode{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error
}

func (r *VerificationGormRepository) ConsumeCode(
	ctx context.Context,
	codeID uuid.UUID,
	userID uuid.UUID,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.VerificationCode{}).
			Where("id = ? AND used = ?", codeID, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		// lost a concurrent verify of the same code
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness(httperr.CodeVerificationUsed)
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("email_verified", true).Error
	})
}

func (r *VerificationGormRepository) PurgeCodes(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR (used = ? AND created_at < ?)", cutoff, true, cutoff).
		Delete(&models.VerificationCode{})
	return res.RowsAffected, res.Error
}
