package checkout

import (
	"github.com/google/uuid"

	"github.com/borealis-store/borealis-backend/pkg/types"
)

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	ShippingAddress *types.ShippingAddress `json:"shippingAddress"`
}

// PlaceOrderResponse reports the created order.
type PlaceOrderResponse struct {
	Message    string    `json:"message"`
	OrderID    uuid.UUID `json:"orderId"`
	TotalPrice string    `json:"totalPrice"`
}
