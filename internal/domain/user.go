package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID       = errors.New("user ID cannot be empty")
	ErrEmptyEmail        = errors.New("email cannot be empty")
	ErrPasswordTooShort  = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong   = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrInvalidBirthplace = errors.New("birthplace coordinates out of range")
)

// User represents a registered user of the Aura application.
// Birth data is optional at registration; readings cannot be computed
// until a birth date has been recorded.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string     `json:"-"` // Never expose password hash in JSON
	Name           string     `json:"name"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	BirthLatitude  *float64   `json:"birth_latitude,omitempty"`
	BirthLongitude *float64   `json:"birth_longitude,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// GeoPoint is a latitude/longitude pair identifying a place of birth.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Profile is the immutable snapshot of the birth data needed by the
// scoring pipeline. It is derived from a User at computation time and
// never mutated afterwards.
type Profile struct {
	Name       string
	BirthDate  time.Time
	Birthplace *GeoPoint
}

// NewUser creates a new User with the given email and password.
// It generates a new UUID for the user ID and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext password.
// The caller is responsible for hashing the password before storing the user.
func NewUser(email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  password, // Plaintext password - must be hashed before storage
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// During user creation/update we need to validate the provided password
	if u.Password != "" {
		if !validatePasswordLength(u.Password) {
			if len(u.Password) < 12 {
				return ErrPasswordTooShort
			}
			return ErrPasswordTooLong
		}
	} else {
		// When no plaintext password is provided, the user must have a hashed
		// password (the case for existing users loaded from the database).
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	// Birthplace coordinates, when present, must come as a pair and be
	// within valid ranges.
	if (u.BirthLatitude == nil) != (u.BirthLongitude == nil) {
		return ErrInvalidBirthplace
	}
	if u.BirthLatitude != nil {
		if *u.BirthLatitude < -90 || *u.BirthLatitude > 90 ||
			*u.BirthLongitude < -180 || *u.BirthLongitude > 180 {
			return ErrInvalidBirthplace
		}
	}

	return nil
}

// SetBirthData records the user's birth date and optional birthplace,
// updating the UpdatedAt timestamp. Returns an error if the coordinates
// are out of range.
func (u *User) SetBirthData(birthDate time.Time, place *GeoPoint) error {
	bd := birthDate.UTC()
	u.BirthDate = &bd
	if place != nil {
		lat, lon := place.Latitude, place.Longitude
		u.BirthLatitude = &lat
		u.BirthLongitude = &lon
	} else {
		u.BirthLatitude = nil
		u.BirthLongitude = nil
	}

	if err := u.Validate(); err != nil {
		u.BirthDate = nil
		u.BirthLatitude = nil
		u.BirthLongitude = nil
		return err
	}

	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Profile returns the birth-data snapshot required by the scoring
// pipeline. Returns ErrProfileMissing if no birth date has been recorded.
func (u *User) Profile() (*Profile, error) {
	if u.BirthDate == nil {
		return nil, ErrProfileMissing
	}

	p := &Profile{
		Name:      u.Name,
		BirthDate: u.BirthDate.UTC(),
	}
	if u.BirthLatitude != nil && u.BirthLongitude != nil {
		p.Birthplace = &GeoPoint{
			Latitude:  *u.BirthLatitude,
			Longitude: *u.BirthLongitude,
		}
	}
	return p, nil
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false
	}

	// Check for domain part after @
	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	// Check for dot in domain, but not immediately after @ and not at the end
	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	if dotIndex == -1 || dotIndex == 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}

// validatePasswordLength checks if a password meets length requirements:
// minimum 12 characters, maximum 72 characters (bcrypt's practical limit).
//
// Length is favored over character-class complexity because longer
// passwords provide better security than shorter ones with special
// character requirements.
func validatePasswordLength(password string) bool {
	passLen := len(password)
	return passLen >= 12 && passLen <= 72
}
