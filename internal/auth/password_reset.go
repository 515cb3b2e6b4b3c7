package auth

import (
	"context"
	"strings"
	"time"

	"github.com/borealis-store/borealis-backend/internal/notifications"
	"github.com/borealis-store/borealis-backend/pkg/db"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
	"github.com/borealis-store/borealis-backend/pkg/security"
)

const (
	forgotPasswordMessage = "If a user with that email exists, a password reset link has been sent."
	passwordResetMessage  = "Password has been reset successfully."
	invalidResetMessage   = "password reset token is invalid or has expired"
	defaultResetTokenTTL  = time.Hour
)

// ForgotPassword answers identically whether or not the account exists. Delivery
// failures are logged and never surface to the caller.
func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*MessageResponse, error) {
	ack := &MessageResponse{Message: forgotPasswordMessage}

	email := normalizeEmail(req.Email)
	if email == "" {
		return ack, nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return ack, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	token, digest, err := security.GenerateResetToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}

	ttl := s.resetTTL()
	if err := s.users.SetResetToken(ctx, user.ID, digest, s.now().UTC().Add(ttl)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reset token")
	}

	recipient := notifications.Recipient{Name: user.Name, Email: user.Email}
	if err := s.notifier.SendPasswordReset(ctx, recipient, s.frontend.ResetPasswordURL(token), ttl); err != nil && s.logg != nil {
		logCtx := s.logg.WithUserID(ctx, user.ID.String())
		s.logg.Error(logCtx, "auth.password_reset.email_failed", err)
	}

	return ack, nil
}

// ResetPassword consumes a reset token. Tokens are single use and expire.
func (s *service) ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) (*MessageResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidResetMessage)
	}
	if req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	digest := security.HashResetToken(token)
	user, err := s.users.FindByResetToken(ctx, digest, s.now().UTC())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidResetMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup reset token")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	ok, err := s.users.ResetPassword(ctx, user.ID, digest, passwordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reset password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidResetMessage)
	}

	return &MessageResponse{Message: passwordResetMessage}, nil
}

func (s *service) resetTTL() time.Duration {
	if s.passwordCfg.ResetTokenTTL > 0 {
		return s.passwordCfg.ResetTokenTTL
	}
	return defaultResetTokenTTL
}
