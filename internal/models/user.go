package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name          string `gorm:"size:100;not null" json:"name"`
	Email         string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"size:255;not null" json:"-"`
	EmailVerified bool   `gorm:"default:false" json:"emailVerified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
