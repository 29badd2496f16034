package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRequestID_EchoesSuppliedID(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
}

func TestWithRequestID_GeneratesWhenAbsent(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}
