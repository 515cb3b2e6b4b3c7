package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/borealis-store/borealis-backend/pkg/db/models"
)

// CartItemDTO is a cart line as returned to its owner.
type CartItemDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	ImageURL  string    `json:"imageUrl"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AddItemRequest adds one unit of a product to the caller's cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// AddItemResult reports whether a new line was created or an existing one grew.
type AddItemResult struct {
	Message string       `json:"message"`
	Item    *CartItemDTO `json:"item"`
	Created bool         `json:"-"`
}

// GuestCartEntry is a line held by an anonymous client before login.
type GuestCartEntry struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int    `json:"quantity"`
}

// MergeRequest carries the guest cart to fold into the account cart.
type MergeRequest struct {
	CartItems []GuestCartEntry `json:"cartItems"`
}

// MergeResult summarises a best-effort merge.
type MergeResult struct {
	Message string `json:"message"`
	Merged  int    `json:"merged"`
	Skipped int    `json:"skipped"`
}

// MessageResponse acknowledges quantity changes.
type MessageResponse struct {
	Message string `json:"message"`
}

func FromModel(item *models.CartItem) *CartItemDTO {
	if item == nil {
		return nil
	}
	return &CartItemDTO{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		ImageURL:  item.ImageURL,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// FromModels converts a slice, always returning a non-nil result.
func FromModels(list []models.CartItem) []CartItemDTO {
	out := make([]CartItemDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
