package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/service"
	"github.com/auradaily/aura-api/internal/service/auth"
	"github.com/auradaily/aura-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid refresh token", auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
		{"store user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"email exists", service.ErrEmailExists, http.StatusConflict},
		{"birth data missing", service.ErrBirthDataMissing, http.StatusUnprocessableEntity},
		{"invalid date", service.ErrInvalidDate, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid log category", domain.ErrInvalidLogCategory, http.StatusBadRequest},
		{"log payload missing", domain.ErrLogPayloadMissing, http.StatusBadRequest},
		{"unknown error", errors.New("database exploded"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("compute: %w", service.ErrBirthDataMissing), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Invalid token"},
		{"expired refresh token", auth.ErrExpiredRefreshToken, "Invalid refresh token"},
		{"invalid credentials", service.ErrInvalidCredentials, "Invalid credentials"},
		{"user not found", service.ErrUserNotFound, "User not found"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"birth data missing", service.ErrBirthDataMissing, "Birth data required: record a name and birth date first"},
		{"invalid date", service.ErrInvalidDate, "Invalid date: use YYYY-MM-DD or an RFC 3339 timestamp"},
		{"invalid log category", domain.ErrInvalidLogCategory, "Unknown lifestyle log category"},
		{"log payload missing", domain.ErrLogPayloadMissing, "Log entry payload does not match its category"},
		{"validation", domain.ErrValidation, "Invalid request data"},
		{"unknown error", errors.New("pq: connection refused to db.internal:5432"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "db.internal")
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	t.Run("real validator error", func(t *testing.T) {
		t.Parallel()

		validate := validator.New()
		err := validate.Struct(LoginRequest{Email: "not-an-email", Password: "longenoughpassword"})
		require.Error(t, err)

		assert.Equal(t, "Invalid Email: must be a valid email address", SanitizeValidationError(err))
	})

	t.Run("required tag", func(t *testing.T) {
		t.Parallel()

		validate := validator.New()
		err := validate.Struct(LoginRequest{Password: "longenoughpassword"})
		require.Error(t, err)

		assert.Equal(t, "Invalid Email: this field is required", SanitizeValidationError(err))
	})

	t.Run("non validator error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
	})
}
