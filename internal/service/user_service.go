package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/service/auth"
	"github.com/auradaily/aura-api/internal/store"
)

// UserService provides user account operations.
type UserService interface {
	// Register creates a new account for the given email and password.
	// Returns ErrEmailExists if the email is taken.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate checks an email/password pair against the stored
	// credentials. Returns ErrInvalidCredentials on any mismatch,
	// without revealing whether the email exists.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by ID. Returns ErrUserNotFound if
	// the user does not exist.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateBirthData records or replaces the user's name, birth date,
	// and optional birthplace.
	UpdateBirthData(ctx context.Context, userID uuid.UUID, name string, birthDate time.Time, place *domain.GeoPoint) (*domain.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Warn("failed to create user object", "error", err)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		s.logger.Error("failed to save user", "error", err)
		return nil, &ServiceError{Operation: "register", Message: "failed to save user", Err: err}
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user for authentication", "error", err)
		return nil, &ServiceError{Operation: "authenticate", Message: "failed to retrieve user", Err: err}
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateBirthData implements UserService.UpdateBirthData
func (s *userServiceImpl) UpdateBirthData(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	birthDate time.Time,
	place *domain.GeoPoint,
) (*domain.User, error) {
	var updated *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to retrieve user for birth data update: %w", err)
		}

		user.Name = name
		if err := user.SetBirthData(birthDate, place); err != nil {
			return err
		}

		if err := txStore.UpdateBirthData(ctx, user); err != nil {
			return fmt.Errorf("failed to save birth data: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user birth data updated", "user_id", userID)
	return updated, nil
}
