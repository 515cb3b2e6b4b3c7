package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
	"github.com/borealis-store/borealis-backend/pkg/mailer"
	"github.com/borealis-store/borealis-backend/pkg/types"
)

const (
	passwordResetSubject     = "Borealis Password Reset Request"
	orderConfirmationSubject = "Borealis Order Confirmation - #%s"
)

// Recipient identifies who an email is addressed to.
type Recipient struct {
	Name  string
	Email string
}

// OrderConfirmation is the data rendered into the order confirmation email.
type OrderConfirmation struct {
	OrderID         uuid.UUID
	Recipient       Recipient
	Items           types.OrderItems
	TotalPrice      string
	ShippingAddress types.ShippingAddress
}

// Service renders and sends the storefront's transactional emails.
type Service interface {
	SendPasswordReset(ctx context.Context, to Recipient, resetURL string, validFor time.Duration) error
	SendOrderConfirmation(ctx context.Context, order OrderConfirmation) error
}

type service struct {
	mailer mailer.Mailer
}

// NewService wires notification dependencies.
func NewService(m mailer.Mailer) (Service, error) {
	if m == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer required")
	}
	return &service{mailer: m}, nil
}

func (s *service) SendPasswordReset(ctx context.Context, to Recipient, resetURL string, validFor time.Duration) error {
	if strings.TrimSpace(resetURL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "reset url required")
	}
	html, err := render(passwordResetTemplate, passwordResetView{URL: resetURL, ValidFor: humanDuration(validFor)})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render password reset email")
	}
	msg := mailer.Message{
		ToEmail: to.Email,
		ToName:  to.Name,
		Subject: passwordResetSubject,
		Text:    "Reset your Borealis password: " + resetURL,
		HTML:    html,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send password reset email")
	}
	return nil
}

func (s *service) SendOrderConfirmation(ctx context.Context, order OrderConfirmation) error {
	view := orderConfirmationView{
		CustomerName: order.Recipient.Name,
		OrderID:      order.OrderID.String(),
		Items:        order.Items,
		TotalPrice:   order.TotalPrice,
		Address:      order.ShippingAddress,
	}
	html, err := render(orderConfirmationTemplate, view)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render order confirmation email")
	}
	msg := mailer.Message{
		ToEmail: order.Recipient.Email,
		ToName:  order.Recipient.Name,
		Subject: fmt.Sprintf(orderConfirmationSubject, view.OrderID),
		Text:    orderConfirmationText(view),
		HTML:    html,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send order confirmation email")
	}
	return nil
}

func humanDuration(d time.Duration) string {
	if d <= 0 {
		d = time.Hour
	}
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
