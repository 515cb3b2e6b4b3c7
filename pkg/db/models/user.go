package models

import (
	"time"

	"github.com/borealis-store/borealis-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a storefront account.
type User struct {
	ID                     uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name                   string         `gorm:"column:name;not null"`
	Email                  string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash           string         `gorm:"column:password_hash;not null"`
	Role                   enums.UserRole `gorm:"column:role;type:text;not null;default:'customer'"`
	PasswordResetTokenHash *string        `gorm:"column:password_reset_token_hash;index"`
	PasswordResetExpiresAt *time.Time     `gorm:"column:password_reset_expires_at"`
	CreatedAt              time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
