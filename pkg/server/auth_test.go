package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/stretchr/testify/assert"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthMiddlewareOpenWithoutAudience(t *testing.T) {
	s := &Server{}
	next, called := okHandler()

	r := httptest.NewRequest(http.MethodGet, "/api/referencedata", nil)
	rr := httptest.NewRecorder()
	s.authMiddleware(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
}

func TestAuthMiddlewareRequiresBearer(t *testing.T) {
	s := &Server{
		oidcVerifier: func(ctx context.Context, raw string) (*oidc.IDToken, error) {
			return nil, errors.New("should not be called")
		},
	}
	next, called := okHandler()

	r := httptest.NewRequest(http.MethodGet, "/api/referencedata", nil)
	rr := httptest.NewRecorder()
	s.authMiddleware(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	s := &Server{
		oidcVerifier: func(ctx context.Context, raw string) (*oidc.IDToken, error) {
			return nil, errors.New("expired")
		},
	}
	next, called := okHandler()

	r := httptest.NewRequest(http.MethodGet, "/api/referencedata", nil)
	r.Header.Set("Authorization", "Bearer bad-token")
	rr := httptest.NewRecorder()
	s.authMiddleware(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	s := &Server{
		oidcVerifier: func(ctx context.Context, raw string) (*oidc.IDToken, error) {
			return &oidc.IDToken{}, nil
		},
	}
	next, called := okHandler()

	r := httptest.NewRequest(http.MethodGet, "/api/referencedata", nil)
	r.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	s.authMiddleware(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
}
