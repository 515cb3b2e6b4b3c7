package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/borealis-store/borealis-backend/pkg/db"
	"github.com/borealis-store/borealis-backend/pkg/db/models"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
	"github.com/borealis-store/borealis-backend/pkg/logger"
)

const (
	cartItemNotFound  = "cart item not found"
	productNotFound   = "product not found"
	outOfStockMessage = "sorry, this product is out of stock"
	maxDecrementTries = 3
)

// Service defines the cart operations available to an authenticated user.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]CartItemDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*AddItemResult, error)
	Increment(ctx context.Context, userID, itemID uuid.UUID) (*MessageResponse, error)
	Decrement(ctx context.Context, userID, itemID uuid.UUID) (*MessageResponse, error)
	Clear(ctx context.Context, userID uuid.UUID) (*MessageResponse, error)
	Merge(ctx context.Context, userID uuid.UUID, req MergeRequest) (*MergeResult, error)
}

type itemRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindByProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	AddQuantityByProduct(ctx context.Context, userID, productID uuid.UUID, delta int) (bool, error)
	Increment(ctx context.Context, userID, id uuid.UUID) (bool, error)
	DecrementAboveOne(ctx context.Context, userID, id uuid.UUID) (bool, error)
	DeleteSingle(ctx context.Context, userID, id uuid.UUID) (bool, error)
	ClearByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type productLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

// ServiceParams bundles the cart service dependencies.
type ServiceParams struct {
	Items    itemRepository
	Products productLookup
	Logger   *logger.Logger
}

type service struct {
	items    itemRepository
	products productLookup
	logg     *logger.Logger
}

// NewService constructs the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Items == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product lookup is required")
	}
	return &service{items: params.Items, products: params.Products, logg: params.Logger}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]CartItemDTO, error) {
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart items")
	}
	return FromModels(items), nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*AddItemResult, error) {
	productID, err := uuid.Parse(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid product id is required")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, productNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if product.CountInStock <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, outOfStockMessage)
	}

	created, err := s.addQuantity(ctx, userID, product, 1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
	}

	item, err := s.items.FindByProduct(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}

	result := &AddItemResult{Message: "Item quantity updated!", Item: FromModel(item), Created: created}
	if created {
		result.Message = "Item added to cart!"
	}
	return result, nil
}

// addQuantity grows an existing line or inserts a snapshot. An insert that
// loses the unique (user, product) race falls back to the increment.
func (s *service) addQuantity(ctx context.Context, userID uuid.UUID, product *models.Product, qty int) (bool, error) {
	updated, err := s.items.AddQuantityByProduct(ctx, userID, product.ID, qty)
	if err != nil {
		return false, err
	}
	if updated {
		return false, nil
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  qty,
	}
	err = s.items.Create(ctx, item)
	if err == nil {
		return true, nil
	}
	if !db.IsUniqueViolation(err) {
		return false, err
	}

	updated, err = s.items.AddQuantityByProduct(ctx, userID, product.ID, qty)
	if err != nil {
		return false, err
	}
	if !updated {
		return false, fmt.Errorf("cart item for product %s vanished during insert race", product.ID)
	}
	return false, nil
}

func (s *service) Increment(ctx context.Context, userID, itemID uuid.UUID) (*MessageResponse, error) {
	ok, err := s.items.Increment(ctx, userID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment cart item")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, cartItemNotFound)
	}
	return &MessageResponse{Message: "Item quantity increased"}, nil
}

// Decrement removes one unit; the last unit removes the line. The two
// conditional statements are retried when a concurrent change slips between them.
func (s *service) Decrement(ctx context.Context, userID, itemID uuid.UUID) (*MessageResponse, error) {
	for attempt := 0; attempt < maxDecrementTries; attempt++ {
		decreased, err := s.items.DecrementAboveOne(ctx, userID, itemID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement cart item")
		}
		if decreased {
			return &MessageResponse{Message: "Item quantity decreased"}, nil
		}

		removed, err := s.items.DeleteSingle(ctx, userID, itemID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
		}
		if removed {
			return &MessageResponse{Message: "Item removed from cart"}, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, cartItemNotFound)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*MessageResponse, error) {
	if _, err := s.items.ClearByUser(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return &MessageResponse{Message: "Cart cleared"}, nil
}

// Merge folds a guest cart into the account cart. Entries are applied
// independently; invalid ones are skipped and failures are aggregated and logged.
func (s *service) Merge(ctx context.Context, userID uuid.UUID, req MergeRequest) (*MergeResult, error) {
	if len(req.CartItems) == 0 {
		return &MergeResult{Message: "No items to merge."}, nil
	}

	ids := make([]uuid.UUID, 0, len(req.CartItems))
	for _, entry := range req.CartItems {
		if id, err := uuid.Parse(strings.TrimSpace(entry.ProductID)); err == nil {
			ids = append(ids, id)
		}
	}
	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
	}

	result := &MergeResult{Message: "Cart merged successfully!"}
	var errs error
	for _, entry := range req.CartItems {
		productID, parseErr := uuid.Parse(strings.TrimSpace(entry.ProductID))
		if parseErr != nil || entry.Quantity <= 0 {
			result.Skipped++
			continue
		}
		product, ok := catalog[productID]
		if !ok || product.CountInStock <= 0 {
			result.Skipped++
			continue
		}
		if _, addErr := s.addQuantity(ctx, userID, &product, entry.Quantity); addErr != nil {
			result.Skipped++
			errs = multierr.Append(errs, fmt.Errorf("product %s: %w", productID, addErr))
			continue
		}
		result.Merged++
	}

	if errs != nil && s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"user_id":  userID.String(),
			"merged":   result.Merged,
			"skipped":  result.Skipped,
			"failures": len(multierr.Errors(errs)),
		})
		s.logg.Error(logCtx, "cart.merge.partial_failure", errs)
	}

	return result, nil
}
