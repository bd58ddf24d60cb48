package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EnergyType is the categorical label describing the character of a
// day's energy, derived from the composite score.
type EnergyType string

// Energy type labels, from strongest to weakest.
const (
	EnergyTypeRadiant    EnergyType = "radiant"
	EnergyTypeDynamic    EnergyType = "dynamic"
	EnergyTypeBalanced   EnergyType = "balanced"
	EnergyTypeReflective EnergyType = "reflective"
	EnergyTypeRestful    EnergyType = "restful"
)

// ConfidenceLevel is a discrete trust tier attached to derived
// statistics and predictions.
type ConfidenceLevel string

// Confidence tiers.
const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// Fact is a single human-readable statement produced by one subsystem
// scorer, used as raw material for explanations.
type Fact struct {
	Subsystem string `json:"subsystem"`
	Statement string `json:"statement"`
}

// SubsystemFailure records that one subsystem scorer failed during a
// reading. Failures are collected as diagnostics and never abort the
// composite computation.
type SubsystemFailure struct {
	Subsystem string `json:"subsystem"`
	Reason    string `json:"reason"`
}

// PersonalizedAdjustment is a signed point delta attributed to one
// lifestyle factor on one day. Ephemeral: generated per request and
// never persisted.
type PersonalizedAdjustment struct {
	Factor         LogCategory `json:"factor"`
	Description    string      `json:"description"`
	Adjustment     int         `json:"adjustment"`
	Recommendation string      `json:"recommendation"`
}

// Prediction is a heuristic success-rate forecast for the day.
type Prediction struct {
	SuccessRate int             `json:"success_rate"` // 0-100
	Confidence  ConfidenceLevel `json:"confidence"`
	Reasoning   string          `json:"reasoning"`
}

// Reading validation errors.
var (
	ErrScoreOutOfRange  = errors.New("score must be between 0 and 100")
	ErrEmptyReadingDay  = errors.New("reading day key cannot be empty")
	ErrEmptyReadingUser = errors.New("reading user ID cannot be empty")
)

// DailyEnergyReading is the pipeline's output value object. Created
// fresh on every computation and never mutated after construction.
//
// Invariant: AdjustedScore == clamp(BaseScore + sum of Adjustments, 0, 100).
type DailyEnergyReading struct {
	UserID        uuid.UUID                `json:"user_id"`
	Day           string                   `json:"day"`
	BaseScore     int                      `json:"base_score"`
	AdjustedScore int                      `json:"adjusted_score"`
	EnergyType    EnergyType               `json:"energy_type"`
	Description   string                   `json:"description"`
	Facts         []Fact                   `json:"facts"`
	Adjustments   []PersonalizedAdjustment `json:"adjustments"`
	Prediction    Prediction               `json:"prediction"`
	Diagnostics   []SubsystemFailure       `json:"diagnostics,omitempty"`
	ComputedAt    time.Time                `json:"computed_at"`
}

// Validate checks the reading's invariants. The score range checks are
// programming-logic assertions: the pipeline clamps before construction,
// so a violation here indicates a bug, not bad user input.
func (r *DailyEnergyReading) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrEmptyReadingUser
	}
	if r.Day == "" {
		return ErrEmptyReadingDay
	}
	if r.BaseScore < 0 || r.BaseScore > 100 {
		return ErrScoreOutOfRange
	}
	if r.AdjustedScore < 0 || r.AdjustedScore > 100 {
		return ErrScoreOutOfRange
	}
	return nil
}

// TotalAdjustment returns the sum of all per-factor adjustments.
func (r *DailyEnergyReading) TotalAdjustment() int {
	total := 0
	for _, a := range r.Adjustments {
		total += a.Adjustment
	}
	return total
}

// ScorePoint is one (day, score) observation from a user's reading
// history, used as the dependent series in correlation analysis.
type ScorePoint struct {
	Day   string  `json:"day"`
	Score float64 `json:"score"`
}

// ClampScore bounds a raw score to the [0,100] range used by both the
// base and adjusted scores.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
