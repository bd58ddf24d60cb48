package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradaily/aura-api/internal/mocks"
	"github.com/auradaily/aura-api/internal/service/auth"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	// echoHandler records the user ID the middleware injected.
	runRequest := func(jwtService auth.JWTService, header string) (*httptest.ResponseRecorder, *uuid.UUID) {
		var seen *uuid.UUID
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := GetUserID(r); ok {
				seen = &id
			}
			w.WriteHeader(http.StatusOK)
		})

		m := NewAuthMiddleware(jwtService)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(w, req)
		return w, seen
	}

	t.Run("valid token reaches handler with user ID", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: userID, TokenType: "access"},
		}

		w, seen := runRequest(jwtService, "Bearer valid-token")

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, seen)
		assert.Equal(t, userID, *seen)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		w, seen := runRequest(&mocks.MockJWTService{}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, seen)
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		t.Parallel()

		w, seen := runRequest(&mocks.MockJWTService{}, "Basic dXNlcjpwYXNz")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, seen)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}

		w, seen := runRequest(jwtService, "Bearer stale-token")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
		assert.Nil(t, seen)
	})

	t.Run("refresh token used as access token", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrWrongTokenType}

		w, _ := runRequest(jwtService, "Bearer refresh-token")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("unexpected validation failure", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{ValidateErr: errors.New("keystore unreachable")}

		w, _ := runRequest(jwtService, "Bearer some-token")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "keystore")
	})
}

func TestGetUserID_Missing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok)
}
