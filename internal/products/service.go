package product

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/borealis-store/borealis-backend/pkg/checkout"
	"github.com/borealis-store/borealis-backend/pkg/db"
	"github.com/borealis-store/borealis-backend/pkg/db/models"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
)

const (
	// SearchLimit caps prefix search results.
	SearchLimit       = 8
	maxSearchQueryLen = 100
	productNotFound   = "product not found"
)

// Service exposes catalog reads and admin writes.
type Service interface {
	List(ctx context.Context, category string) ([]ProductDTO, error)
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query string) ([]ProductDTO, error)
	Get(ctx context.Context, rawID string) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo repository
}

// NewService builds a catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, category string) ([]ProductDTO, error) {
	list, err := s.repo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return FromModels(list), nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *service) Search(ctx context.Context, query string) ([]ProductDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	if utf8.RuneCountInString(query) > maxSearchQueryLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query too long").
			WithDetails(map[string]any{"field": "q", "max": maxSearchQueryLen})
	}
	list, err := s.repo.SearchByPrefix(ctx, query, SearchLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search products")
	}
	return FromModels(list), nil
}

// Get treats a malformed id the same as a missing product.
func (s *service) Get(ctx context.Context, rawID string) (*ProductDTO, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, productNotFound)
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(product), nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.Price) == "" || input.CountInStock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, price, and countInStock are required")
	}
	if *input.CountInStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "countInStock must be zero or greater")
	}
	price, err := checkout.NormalizePrice(input.Price)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price must be a valid amount")
	}

	product := &models.Product{
		Name:         name,
		Price:        price,
		ImageURL:     strings.TrimSpace(input.ImageURL),
		CountInStock: *input.CountInStock,
		Category:     trimmedOrNil(input.Category),
		Description:  trimmedOrNil(input.Description),
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) error {
	changes, err := updateChanges(input)
	if err != nil {
		return err
	}
	found, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, productNotFound)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, productNotFound)
	}
	return nil
}

func updateChanges(input UpdateProductInput) (map[string]any, error) {
	changes := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		changes["name"] = name
	}
	if input.Price != nil {
		price, err := checkout.NormalizePrice(*input.Price)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price must be a valid amount")
		}
		changes["price"] = price
	}
	if input.ImageURL != nil {
		changes["image_url"] = strings.TrimSpace(*input.ImageURL)
	}
	if input.CountInStock != nil {
		if *input.CountInStock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "countInStock must be zero or greater")
		}
		changes["count_in_stock"] = *input.CountInStock
	}
	if input.Category != nil {
		changes["category"] = trimmedOrNil(input.Category)
	}
	if input.Description != nil {
		changes["description"] = trimmedOrNil(input.Description)
	}
	return changes, nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapLookupError(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, productNotFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
}
