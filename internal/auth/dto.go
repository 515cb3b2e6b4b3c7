package auth

import "github.com/google/uuid"

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse reports the identifier of the created account.
type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token minted for the session.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest completes a password reset; the token comes from the path.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// MessageResponse is the plain acknowledgement returned by the reset flow.
type MessageResponse struct {
	Message string `json:"message"`
}
