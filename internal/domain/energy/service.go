package energy

import (
	"errors"
	"time"

	"github.com/auradaily/aura-api/internal/domain"
)

// Common errors
var (
	ErrNilProfile = errors.New("profile cannot be nil")
)

// Service defines the interface for composite energy score computation.
type Service interface {
	// ComputeComposite runs all subsystem scorers for the profile and
	// target date and aggregates them into a base energy score.
	// Per-subsystem failures are reported inside the Composite; the
	// only error returned here is a nil profile.
	ComputeComposite(profile *domain.Profile, targetDate time.Time) (*Composite, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new energy service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new energy service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ComputeComposite implements the Service interface.
func (s *defaultService) ComputeComposite(
	profile *domain.Profile,
	targetDate time.Time,
) (*Composite, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}

	return calculateComposite(profile, targetDate, s.params), nil
}
