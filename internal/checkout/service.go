package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borealis-store/borealis-backend/internal/cart"
	"github.com/borealis-store/borealis-backend/internal/events"
	"github.com/borealis-store/borealis-backend/internal/notifications"
	"github.com/borealis-store/borealis-backend/internal/orders"
	product "github.com/borealis-store/borealis-backend/internal/products"
	pkgcheckout "github.com/borealis-store/borealis-backend/pkg/checkout"
	"github.com/borealis-store/borealis-backend/pkg/db/models"
	"github.com/borealis-store/borealis-backend/pkg/enums"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
	"github.com/borealis-store/borealis-backend/pkg/logger"
	"github.com/borealis-store/borealis-backend/pkg/metrics"
	"github.com/borealis-store/borealis-backend/pkg/types"
)

const (
	orderPlacedMessage    = "Order placed successfully!"
	sideEffectTimeout     = 15 * time.Second
	failureValidation     = "validation"
	failureEmptyCart      = "empty_cart"
	failureStock          = "stock"
	failureInternal       = "internal"
	sideEffectEmail       = "email"
	sideEffectEvent       = "event"
	shippingRequiredError = "shipping address with a phone number is required"
	emptyCartError        = "your cart is empty"
)

// Service places orders from the caller's cart.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*PlaceOrderResponse, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type confirmationSender interface {
	SendOrderConfirmation(ctx context.Context, order notifications.OrderConfirmation) error
}

// ServiceParams bundles the checkout dependencies.
type ServiceParams struct {
	DB        txRunner
	Users     userLookup
	Notifier  confirmationSender
	Publisher events.Publisher
	Metrics   *metrics.CheckoutMetrics
	Logger    *logger.Logger
	Now       func() time.Time
}

type service struct {
	db        txRunner
	users     userLookup
	notifier  confirmationSender
	publisher events.Publisher
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService constructs the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user lookup is required")
	}
	publisher := params.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:        params.DB,
		users:     params.Users,
		notifier:  params.Notifier,
		publisher: publisher,
		metrics:   params.Metrics,
		logg:      params.Logger,
		now:       now,
	}, nil
}

// PlaceOrder snapshots the cart into an order, decrements stock and clears the
// cart in one transaction. Email and event delivery run after commit and never
// fail the request.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	if req.ShippingAddress == nil || strings.TrimSpace(req.ShippingAddress.PhoneNumber) == "" {
		s.metrics.IncFailure(failureValidation)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, shippingRequiredError)
	}
	address := req.ShippingAddress.Normalize()

	var order *models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := cart.NewRepository(tx)
		productRepo := product.NewRepository(tx)
		orderRepo := orders.NewRepository(tx)

		items, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, emptyCartError)
		}

		lines, snapshot := snapshotItems(items)
		total, err := pkgcheckout.Total(lines)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "price cart")
		}

		if err := checkStock(ctx, productRepo, items); err != nil {
			return err
		}

		order = &models.Order{
			UserID:          userID,
			Items:           snapshot,
			TotalPrice:      pkgcheckout.FormatTotal(total),
			ShippingAddress: address,
			Status:          enums.OrderStatusPending,
			TrackingNumber:  "",
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		for _, item := range items {
			ok, err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("insufficient stock for %s", item.Name)).
					WithDetails(map[string]any{"productId": item.ProductID})
			}
		}

		if _, err := cartRepo.ClearByUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(failureReason(err))
		return nil, err
	}

	s.metrics.IncPlaced()
	s.afterCommit(ctx, order)

	return &PlaceOrderResponse{
		Message:    orderPlacedMessage,
		OrderID:    order.ID,
		TotalPrice: order.TotalPrice,
	}, nil
}

func snapshotItems(items []models.CartItem) ([]pkgcheckout.Line, types.OrderItems) {
	lines := make([]pkgcheckout.Line, 0, len(items))
	snapshot := make(types.OrderItems, 0, len(items))
	for _, item := range items {
		lines = append(lines, pkgcheckout.Line{Price: item.Price, Quantity: item.Quantity})
		snapshot = append(snapshot, types.OrderItem{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		})
	}
	return lines, snapshot
}

func checkStock(ctx context.Context, repo *product.Repository, items []models.CartItem) error {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	catalog, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
	}
	inputs := make([]pkgcheckout.StockValidationInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, pkgcheckout.StockValidationInput{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Available:   catalog[item.ProductID].CountInStock,
			Quantity:    item.Quantity,
		})
	}
	return pkgcheckout.ValidateStock(inputs)
}

func failureReason(err error) string {
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeValidation:
		if typed := pkgerrors.As(err); typed != nil && typed.Message() == emptyCartError {
			return failureEmptyCart
		}
		return failureValidation
	case pkgerrors.CodeStateConflict:
		return failureStock
	default:
		return failureInternal
	}
}

func (s *service) afterCommit(ctx context.Context, order *models.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, order.ID.String())
	}

	purchaser, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		s.logError(ctx, "checkout.purchaser_lookup_failed", err)
		purchaser = nil
	}

	if s.notifier != nil {
		if err := s.sendConfirmation(ctx, order, purchaser); err != nil {
			s.metrics.IncSideEffectFailure(sideEffectEmail)
			s.logError(ctx, "checkout.confirmation_email_failed", err)
		}
	}

	event := events.OrderPlaced{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		ItemCount:  order.Items.Count(),
		PlacedAt:   s.now().UTC(),
	}
	if purchaser != nil {
		event.ActorRole = string(purchaser.Role)
	}
	for _, item := range order.Items {
		event.Lines = append(event.Lines, events.OrderPlacedLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	if err := s.publisher.OrderPlaced(ctx, event); err != nil {
		s.metrics.IncSideEffectFailure(sideEffectEvent)
		s.logError(ctx, "checkout.order_event_failed", err)
	}
}

func (s *service) sendConfirmation(ctx context.Context, order *models.Order, user *models.User) error {
	if user == nil {
		return fmt.Errorf("purchaser %s not loaded", order.UserID)
	}
	return s.notifier.SendOrderConfirmation(ctx, notifications.OrderConfirmation{
		OrderID:         order.ID,
		Recipient:       notifications.Recipient{Name: user.Name, Email: user.Email},
		Items:           order.Items,
		TotalPrice:      order.TotalPrice,
		ShippingAddress: order.ShippingAddress,
	})
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, msg, err)
}
