package payments

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borealis-store/borealis-backend/pkg/db/models"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
	"github.com/borealis-store/borealis-backend/pkg/stripe"
)

type stubCart struct {
	items []models.CartItem
	err   error
}

func (s stubCart) ListByUser(context.Context, uuid.UUID) ([]models.CartItem, error) {
	return s.items, s.err
}

type stubStripe struct {
	requests []stripe.PaymentIntentRequest
	err      error
}

func (s *stubStripe) CreatePaymentIntent(_ context.Context, req stripe.PaymentIntentRequest) (*stripe.PaymentIntent, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &stripe.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret_abc"}, nil
}

func (s *stubStripe) Currency() string { return "usd" }

func TestCreateIntentConvertsTotalToMinorUnits(t *testing.T) {
	userID := uuid.New()
	gateway := &stubStripe{}
	svc, err := NewService(ServiceParams{
		Cart: stubCart{items: []models.CartItem{
			{Price: "$10.00", Quantity: 2},
			{Price: "$5.55", Quantity: 1},
		}},
		Stripe: gateway,
	})
	require.NoError(t, err)

	resp, err := svc.CreateIntent(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_abc", resp.ClientSecret)

	require.Len(t, gateway.requests, 1)
	assert.Equal(t, int64(2555), gateway.requests[0].AmountMinor)
	assert.Equal(t, "usd", gateway.requests[0].Currency)
	assert.Equal(t, userID.String(), gateway.requests[0].Metadata["user_id"])
}

func TestCreateIntentRejectsEmptyCart(t *testing.T) {
	gateway := &stubStripe{}
	svc, err := NewService(ServiceParams{Cart: stubCart{}, Stripe: gateway})
	require.NoError(t, err)

	_, err = svc.CreateIntent(context.Background(), uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, gateway.requests)
}

func TestCreateIntentMapsProviderFailure(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Cart:   stubCart{items: []models.CartItem{{Price: "$1.00", Quantity: 1}}},
		Stripe: &stubStripe{err: errors.New("card_declined")},
	})
	require.NoError(t, err)

	_, err = svc.CreateIntent(context.Background(), uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.Equal(t, http.StatusInternalServerError, pkgerrors.MetadataFor(pkgerrors.As(err).Code()).HTTPStatus)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{Stripe: &stubStripe{}})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{Cart: stubCart{}})
	assert.Error(t, err)
}
