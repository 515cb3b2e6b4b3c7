package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memoryIdempotencyStore struct {
	data map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{data: map[string]string{}}
}

func (m *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	return m.data[key], nil
}

func (m *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = fmt.Sprint(value)
	return true, nil
}

func (m *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idempotency:" + scope + ":" + id
}

func countingHandler(status int, calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"call":%d}`, *calls)
	})
}

func idempotentRequest(key, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req = req.WithContext(WithUserID(req.Context(), "user-1"))
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	return req
}

func TestIdempotencyReplaysSuccessfulResponse(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(countingHandler(http.StatusCreated, &calls))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, idempotentRequest("abc", `{"a":1}`))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, idempotentRequest("abc", `{"a":1}`))

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(idempotencyReplayed))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
}

func TestIdempotencyRejectsDifferentBody(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(countingHandler(http.StatusCreated, &calls))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest("abc", `{"a":1}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idempotentRequest("abc", `{"a":2}`))

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "IDEMPOTENCY_KEY_REUSED", decodeCode(t, rec))
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(countingHandler(http.StatusCreated, &calls))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest("", `{}`))
	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest("", `{}`))

	assert.Equal(t, 2, calls)
	assert.Empty(t, store.data)
}

func TestIdempotencyDoesNotRecordFailures(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(countingHandler(http.StatusBadRequest, &calls))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest("abc", `{}`))
	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest("abc", `{}`))

	assert.Equal(t, 2, calls)
	assert.Empty(t, store.data)
}

func TestIdempotencyRejectsOversizedBody(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(countingHandler(http.StatusCreated, &calls))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idempotentRequest("big", `{"note":"`+strings.Repeat("x", maxIdempotentBodyBytes)+`"}`))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, 0, calls)
	assert.Empty(t, store.data)
}

type failingIdempotencyStore struct{ memoryIdempotencyStore }

func (failingIdempotencyStore) Get(context.Context, string) (string, error) {
	return "", errors.New("redis: connection refused")
}

func TestIdempotencyStoreFailureIsInternalError(t *testing.T) {
	calls := 0
	handler := Idempotency(&failingIdempotencyStore{}, time.Hour, nil)(countingHandler(http.StatusCreated, &calls))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idempotentRequest("abc", `{}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "redis")
	assert.Equal(t, 0, calls)
}
