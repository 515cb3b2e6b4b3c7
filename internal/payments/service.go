package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/borealis-store/borealis-backend/pkg/checkout"
	"github.com/borealis-store/borealis-backend/pkg/db/models"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
	"github.com/borealis-store/borealis-backend/pkg/logger"
	"github.com/borealis-store/borealis-backend/pkg/stripe"
)

const emptyCartError = "cannot create payment for an empty cart"

// Service prepares client-side payment collection for the caller's cart.
type Service interface {
	CreateIntent(ctx context.Context, userID uuid.UUID) (*IntentResponse, error)
}

// IntentResponse carries the secret the browser needs to confirm the payment.
type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// ServiceParams groups dependencies for the payment service.
type ServiceParams struct {
	Cart   cartLister
	Stripe intentCreator
	Logger *logger.Logger
}

type cartLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
}

type intentCreator interface {
	CreatePaymentIntent(ctx context.Context, req stripe.PaymentIntentRequest) (*stripe.PaymentIntent, error)
	Currency() string
}

type service struct {
	cart   cartLister
	stripe intentCreator
	logg   *logger.Logger
}

// NewService constructs a payment service.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repo required")
	}
	if params.Stripe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stripe client required")
	}
	return &service{
		cart:   params.Cart,
		stripe: params.Stripe,
		logg:   params.Logger,
	}, nil
}

func (s *service) CreateIntent(ctx context.Context, userID uuid.UUID) (*IntentResponse, error) {
	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, emptyCartError)
	}

	lines := make([]checkout.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, checkout.Line{Price: item.Price, Quantity: item.Quantity})
	}
	total, err := checkout.Total(lines)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "price cart")
	}

	intent, err := s.stripe.CreatePaymentIntent(ctx, stripe.PaymentIntentRequest{
		AmountMinor: checkout.MinorUnits(total),
		Currency:    s.stripe.Currency(),
		Metadata:    map[string]string{"user_id": userID.String()},
	})
	if err != nil {
		if s.logg != nil {
			ctx = s.logg.WithUserID(ctx, userID.String())
			s.logg.Error(ctx, "payments.create_intent_failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment provider unavailable")
	}
	return &IntentResponse{ClientSecret: intent.ClientSecret}, nil
}
