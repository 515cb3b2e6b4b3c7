package models

import (
	"time"

	"github.com/borealis-store/borealis-backend/pkg/enums"
	"github.com/borealis-store/borealis-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is the immutable checkout snapshot plus its admin-managed status.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	User            *User                 `gorm:"foreignKey:UserID;references:ID"`
	Items           types.OrderItems      `gorm:"column:items;type:jsonb;not null"`
	TotalPrice      string                `gorm:"column:total_price;not null"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;not null"`
	Status          enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'Pending'"`
	TrackingNumber  string                `gorm:"column:tracking_number;not null;default:''"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
