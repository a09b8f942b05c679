package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthz(t *testing.T) {
	s := testServer(t)
	s.serverName = "solarproposal"
	handler := s.setupHandler()

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.Equal(t, "solarproposal", rr.Header().Get("Server"))
}

func TestRoutingMethodNotAllowed(t *testing.T) {
	s := testServer(t)
	handler := s.setupHandler()

	r := httptest.NewRequest(http.MethodGet, "/api/proposal", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, r)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
