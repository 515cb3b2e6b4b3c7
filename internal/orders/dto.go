package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/borealis-store/borealis-backend/internal/users"
	"github.com/borealis-store/borealis-backend/pkg/db/models"
	"github.com/borealis-store/borealis-backend/pkg/enums"
	"github.com/borealis-store/borealis-backend/pkg/types"
)

// OrderDTO is an order as returned to its owner.
type OrderDTO struct {
	ID              uuid.UUID             `json:"id"`
	UserID          uuid.UUID             `json:"userId"`
	Items           types.OrderItems      `json:"items"`
	TotalPrice      string                `json:"totalPrice"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	Status          enums.OrderStatus     `json:"status"`
	TrackingNumber  string                `json:"trackingNumber"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// AdminOrderDTO adds the purchaser to the order view.
type AdminOrderDTO struct {
	OrderDTO
	User *users.PurchaserDTO `json:"user"`
}

// UpdateStatusRequest is the admin status change payload.
type UpdateStatusRequest struct {
	Status         string  `json:"status" validate:"required"`
	TrackingNumber *string `json:"trackingNumber"`
}

// MessageResponse acknowledges an admin update.
type MessageResponse struct {
	Message string `json:"message"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := o.Items
	if items == nil {
		items = types.OrderItems{}
	}
	return &OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		TotalPrice:      o.TotalPrice,
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status,
		TrackingNumber:  o.TrackingNumber,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// FromModels converts a slice, always returning a non-nil result.
func FromModels(list []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

// AdminFromModels converts preloaded orders for the admin listing.
func AdminFromModels(list []models.Order) []AdminOrderDTO {
	out := make([]AdminOrderDTO, 0, len(list))
	for i := range list {
		out = append(out, AdminOrderDTO{
			OrderDTO: *FromModel(&list[i]),
			User:     users.PurchaserFromModel(list[i].User),
		})
	}
	return out
}
