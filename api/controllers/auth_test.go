package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/borealis-store/borealis-backend/internal/auth"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
)

type stubAuthService struct {
	registerResp *auth.RegisterResponse
	loginResp    *auth.LoginResponse
	err          error
	resetToken   string
	resetBody    auth.ResetPasswordRequest
}

func (s *stubAuthService) Register(context.Context, auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return s.registerResp, s.err
}

func (s *stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.loginResp, s.err
}

func (s *stubAuthService) ForgotPassword(context.Context, auth.ForgotPasswordRequest) (*auth.MessageResponse, error) {
	return &auth.MessageResponse{Message: "sent"}, s.err
}

func (s *stubAuthService) ResetPassword(_ context.Context, token string, req auth.ResetPasswordRequest) (*auth.MessageResponse, error) {
	s.resetToken = token
	s.resetBody = req
	return &auth.MessageResponse{Message: "reset"}, s.err
}

func TestAuthRegisterReturnsCreated(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{registerResp: &auth.RegisterResponse{Message: "User created successfully!", UserID: userID}}

	resp := httptest.NewRecorder()
	AuthRegister(svc, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/auth/register", `{"name":"Ada","email":"ada@example.com","password":"hunter22"}`))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	var body auth.RegisterResponse
	decodeData(t, resp, &body)
	if body.UserID != userID {
		t.Fatalf("expected user id %s got %s", userID, body.UserID)
	}
}

func TestAuthRegisterRejectsMissingFields(t *testing.T) {
	resp := httptest.NewRecorder()
	AuthRegister(&stubAuthService{}, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/auth/register", `{"email":"ada@example.com"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code got %s", code)
	}
}

func TestAuthLoginMapsInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}

	resp := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"wrong"}`))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthResetPasswordReadsTokenFromPath(t *testing.T) {
	svc := &stubAuthService{}
	router := chi.NewRouter()
	router.Post("/api/auth/reset-password/{token}", AuthResetPassword(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodPost, "/api/auth/reset-password/abc123", `{"password":"n3w-secret"}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", resp.Code, resp.Body.String())
	}
	if svc.resetToken != "abc123" {
		t.Fatalf("expected token abc123 got %q", svc.resetToken)
	}
	if svc.resetBody.Password != "n3w-secret" {
		t.Fatalf("expected password forwarded")
	}
}

func TestAuthHandlersWithoutServiceReturn500(t *testing.T) {
	resp := httptest.NewRecorder()
	AuthLogin(nil, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/auth/login", `{}`))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
