package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
)

type registerBody struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeJSONBodyValidatesFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))
	var body registerBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "password is required", typed.Message())
	assert.Equal(t, map[string]string{"password": "is required"}, typed.Details())
}

func TestDecodeJSONBodyMultipleMissingFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	var body registerBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.Equal(t, "please provide name, email, password", pkgerrors.As(err).Message())
}

func TestDecodeJSONBodyEmptyAndMalformed(t *testing.T) {
	var body registerBody
	err := DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", http.NoBody), &body)
	require.Error(t, err)
	assert.Equal(t, "request body is required", pkgerrors.As(err).Message())

	err = DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`)), &body)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestDecodeJSONBodyToleratesExtraFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada","email":"a@b.c","password":"pw","remember":true}`))
	var body registerBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, "Ada", body.Name)
}

func TestParseUUIDParam(t *testing.T) {
	withParam := func(value string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := ParseUUIDParam(withParam("0b9c1e4e-2f4a-4c55-9a55-5f4f58ad7a11"), "id")
	require.NoError(t, err)
	assert.Equal(t, "0b9c1e4e-2f4a-4c55-9a55-5f4f58ad7a11", id.String())

	_, err = ParseUUIDParam(withParam("not-a-uuid"), "id")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = ParseUUIDParam(withParam(""), "id")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	token, err = BearerToken("bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	token, err = BearerToken("raw-token")
	require.NoError(t, err)
	assert.Equal(t, "raw-token", token)

	_, err = BearerToken("Bearer ")
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = BearerToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString("  abcdef ", 3))
	assert.Equal(t, "abcdef", SanitizeString("abcdef", 0))
}
