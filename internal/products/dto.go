package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/borealis-store/borealis-backend/pkg/db/models"
)

// ProductDTO represents the catalog payload returned to clients.
type ProductDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Price        string    `json:"price"`
	ImageURL     string    `json:"imageUrl"`
	CountInStock int       `json:"countInStock"`
	Category     *string   `json:"category,omitempty"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateProductInput is the admin create payload.
type CreateProductInput struct {
	Name         string  `json:"name" validate:"required"`
	Price        string  `json:"price" validate:"required"`
	ImageURL     string  `json:"imageUrl"`
	CountInStock *int    `json:"countInStock" validate:"required,min=0"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
}

// UpdateProductInput is a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name         *string `json:"name"`
	Price        *string `json:"price"`
	ImageURL     *string `json:"imageUrl"`
	CountInStock *int    `json:"countInStock" validate:"omitempty,min=0"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
}

// CreatedResponse acknowledges an admin create.
type CreatedResponse struct {
	Message    string      `json:"message"`
	NewProduct *ProductDTO `json:"newProduct"`
}

// MutationResponse acknowledges an admin update or delete.
type MutationResponse struct {
	Message string `json:"message"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		CountInStock: p.CountInStock,
		Category:     p.Category,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromModels converts a slice, always returning a non-nil result.
func FromModels(list []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
