package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    string    `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// BirthDataRequest defines the payload for recording a user's birth data.
// BirthDate is a calendar date in YYYY-MM-DD form. Latitude and
// longitude are optional; both must be present to record a birthplace.
type BirthDataRequest struct {
	Name      string   `json:"name"       validate:"required,max=200"`
	BirthDate string   `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Latitude  *float64 `json:"latitude"   validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude"  validate:"omitempty,gte=-180,lte=180"`
}

// UserResponse defines the user profile returned by the API.
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	BirthDate *string    `json:"birth_date,omitempty"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// newUserResponse converts a domain user into its API representation.
func newUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Latitude:  user.BirthLatitude,
		Longitude: user.BirthLongitude,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.BirthDate != nil {
		day := user.BirthDate.Format("2006-01-02")
		resp.BirthDate = &day
	}
	return resp
}

// ScoreHistoryResponse defines the reading history returned by the API.
type ScoreHistoryResponse struct {
	UserID uuid.UUID           `json:"user_id"`
	Points []domain.ScorePoint `json:"points"`
}

// CorrelationsResponse defines the correlation insights returned by the API.
type CorrelationsResponse struct {
	UserID       uuid.UUID            `json:"user_id"`
	Correlations []domain.Correlation `json:"correlations"`
}
