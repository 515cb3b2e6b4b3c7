package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/borealis-store/borealis-backend/pkg/db"
	"github.com/borealis-store/borealis-backend/pkg/db/models"
	"github.com/borealis-store/borealis-backend/pkg/enums"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
	"github.com/borealis-store/borealis-backend/pkg/logger"
)

const orderNotFound = "order not found"

// Service exposes order reads and the admin status workflow.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	ListAll(ctx context.Context) ([]AdminOrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*MessageResponse, error)
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListWithPurchaser(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus, trackingNumber string) (bool, error)
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService builds the orders service.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return FromModels(list), nil
}

func (s *service) ListAll(ctx context.Context) ([]AdminOrderDTO, error) {
	list, err := s.repo.ListWithPurchaser(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list all orders")
	}
	return AdminFromModels(list), nil
}

// UpdateStatus applies an admin transition. An omitted tracking number resets it to empty.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*MessageResponse, error) {
	raw := strings.TrimSpace(req.Status)
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is a required field")
	}
	next, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status").
			WithDetails(map[string]any{"allowed": []enums.OrderStatus{
				enums.OrderStatusPending,
				enums.OrderStatusShipped,
				enums.OrderStatusCompleted,
				enums.OrderStatusCancelled,
			}})
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, orderNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot move order from %s to %s", order.Status, next)).
			WithDetails(map[string]any{"from": order.Status, "to": next})
	}

	tracking := ""
	if req.TrackingNumber != nil {
		tracking = strings.TrimSpace(*req.TrackingNumber)
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, order.Status, next, tracking)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order changed concurrently, reload and retry")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(s.logg.WithOrderID(ctx, orderID.String()), map[string]any{
			"from_status": string(order.Status),
			"to_status":   string(next),
		})
		s.logg.Info(logCtx, "orders.status_updated")
	}

	return &MessageResponse{Message: "Order updated successfully!"}, nil
}
