package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("successful registration", func(t *testing.T) {
		t.Parallel()

		userStore := newFakeUserStore()
		svc := NewUserService(userStore, &mocks.MockPasswordVerifier{}, mocks.NewFakeDB(), discardLogger())

		user, err := svc.Register(context.Background(), "user@example.com", "securepassword1234")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)

		stored, err := userStore.GetByEmail(context.Background(), "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		userStore := newFakeUserStore()
		svc := NewUserService(userStore, &mocks.MockPasswordVerifier{}, mocks.NewFakeDB(), discardLogger())

		_, err := svc.Register(context.Background(), "taken@example.com", "securepassword1234")
		require.NoError(t, err)

		user, err := svc.Register(context.Background(), "taken@example.com", "otherpassword5678")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("invalid input surfaces domain error", func(t *testing.T) {
		t.Parallel()

		svc := NewUserService(newFakeUserStore(), &mocks.MockPasswordVerifier{}, mocks.NewFakeDB(), discardLogger())

		user, err := svc.Register(context.Background(), "user@example.com", "short")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("store failure wraps as service error", func(t *testing.T) {
		t.Parallel()

		userStore := newFakeUserStore()
		userStore.createErr = errors.New("connection refused")
		svc := NewUserService(userStore, &mocks.MockPasswordVerifier{}, mocks.NewFakeDB(), discardLogger())

		user, err := svc.Register(context.Background(), "user@example.com", "securepassword1234")
		assert.Nil(t, user)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "register", svcErr.Operation)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T, verifier *mocks.MockPasswordVerifier) (UserService, *domain.User) {
		t.Helper()

		userStore := newFakeUserStore()
		svc := NewUserService(userStore, verifier, mocks.NewFakeDB(), discardLogger())
		user, err := svc.Register(context.Background(), "user@example.com", "securepassword1234")
		require.NoError(t, err)
		return svc, user
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		svc, registered := setup(t, &mocks.MockPasswordVerifier{})

		user, err := svc.Authenticate(context.Background(), "user@example.com", "securepassword1234")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t, &mocks.MockPasswordVerifier{Err: errors.New("mismatch")})

		_, unknownErr := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
		_, wrongErr := svc.Authenticate(context.Background(), "user@example.com", "wrongpassword123")

		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
		assert.Equal(t, unknownErr, wrongErr)
	})
}

func TestUserService_GetUser(t *testing.T) {
	t.Parallel()

	userStore := newFakeUserStore()
	svc := NewUserService(userStore, &mocks.MockPasswordVerifier{}, mocks.NewFakeDB(), discardLogger())

	registered, err := svc.Register(context.Background(), "user@example.com", "securepassword1234")
	require.NoError(t, err)

	t.Run("existing user", func(t *testing.T) {
		user, err := svc.GetUser(context.Background(), registered.ID)
		require.NoError(t, err)
		assert.Equal(t, registered.Email, user.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		user, err := svc.GetUser(context.Background(), uuid.New())
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_UpdateBirthData(t *testing.T) {
	t.Parallel()

	birthDate := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)

	t.Run("records birth data", func(t *testing.T) {
		t.Parallel()

		userStore := newFakeUserStore()
		svc := NewUserService(userStore, &mocks.MockPasswordVerifier{}, mocks.NewFakeDB(), discardLogger())
		registered, err := svc.Register(context.Background(), "user@example.com", "securepassword1234")
		require.NoError(t, err)

		updated, err := svc.UpdateBirthData(context.Background(), registered.ID, "Test Person",
			birthDate, &domain.GeoPoint{Latitude: 40.7, Longitude: -74.0})
		require.NoError(t, err)
		assert.Equal(t, "Test Person", updated.Name)
		require.NotNil(t, updated.BirthDate)
		assert.True(t, updated.BirthDate.Equal(birthDate))

		// The update is persisted, not just returned.
		stored, err := userStore.GetByID(context.Background(), registered.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.BirthDate)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()

		svc := NewUserService(newFakeUserStore(), &mocks.MockPasswordVerifier{}, mocks.NewFakeDB(), discardLogger())

		updated, err := svc.UpdateBirthData(context.Background(), uuid.New(), "Nobody", birthDate, nil)
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		t.Parallel()

		svc := NewUserService(newFakeUserStore(), &mocks.MockPasswordVerifier{}, mocks.NewFakeDB(), discardLogger())
		registered, err := svc.Register(context.Background(), "user@example.com", "securepassword1234")
		require.NoError(t, err)

		updated, err := svc.UpdateBirthData(context.Background(), registered.ID, "Test Person",
			birthDate, &domain.GeoPoint{Latitude: 95, Longitude: 0})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, domain.ErrInvalidBirthplace)
	})
}
