package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Correlation validation errors.
var (
	ErrEmptyCorrelationUser = errors.New("correlation user ID cannot be empty")
	ErrStrengthOutOfRange   = errors.New("correlation strength must be between -1 and 1")
	ErrNegativeSampleSize   = errors.New("correlation sample size cannot be negative")
)

// Correlation is a derived statistic linking one lifestyle factor to a
// user's historical energy scores. It is a cache, not a source of truth:
// it is recomputed from the full log history and safe to discard.
//
// Strength is the Pearson coefficient and is informational/ranking only.
// Confidence, a pure function of SampleSize, is the sole gate used when
// deciding whether a correlation may influence adjustments.
type Correlation struct {
	UserID     uuid.UUID       `json:"user_id"`
	Factor     LogCategory     `json:"factor"`
	Strength   float64         `json:"strength"` // Pearson coefficient, -1..1
	Impact     float64         `json:"impact"`   // average score delta on matched days
	SampleSize int             `json:"sample_size"`
	Confidence ConfidenceLevel `json:"confidence"`
	ComputedAt time.Time       `json:"computed_at"`
}

// Validate checks if the Correlation has valid data.
func (c *Correlation) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrEmptyCorrelationUser
	}
	if !c.Factor.IsValid() {
		return ErrInvalidLogCategory
	}
	if c.Strength < -1 || c.Strength > 1 {
		return ErrStrengthOutOfRange
	}
	if c.SampleSize < 0 {
		return ErrNegativeSampleSize
	}
	return nil
}

// Trusted reports whether this correlation has enough statistical
// support to influence adjustment computation. Low-confidence
// correlations are informational only.
func (c *Correlation) Trusted() bool {
	return c.Confidence == ConfidenceMedium || c.Confidence == ConfidenceHigh
}

// ConfidenceForSampleSize maps a matched-point count to a confidence
// tier: fewer than 10 points is low, 10-19 is medium, 20 or more is high.
func ConfidenceForSampleSize(sampleSize int) ConfidenceLevel {
	switch {
	case sampleSize >= 20:
		return ConfidenceHigh
	case sampleSize >= 10:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
