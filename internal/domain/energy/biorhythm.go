package energy

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/daykey"
)

// Biorhythm cycle periods in days.
const (
	PhysicalPeriod     = 23
	EmotionalPeriod    = 28
	IntellectualPeriod = 33
)

// CycleState classifies a cycle value relative to its zero crossing.
type CycleState string

// Cycle states. Values within the critical band of zero are transition
// points where the cycle's influence is unstable.
const (
	CycleHigh     CycleState = "high"
	CycleLow      CycleState = "low"
	CycleCritical CycleState = "critical"
)

// CycleReading is one cycle's value and state on the target date.
type CycleReading struct {
	Name   string
	Period int
	Value  int // -100..100
	State  CycleState
}

// BiorhythmResult holds the three cycle readings and the composite
// sub-score.
type BiorhythmResult struct {
	Physical     CycleReading
	Emotional    CycleReading
	Intellectual CycleReading
	Score        int
	Facts        []domain.Fact
}

// ErrBeforeBirth is returned when a biorhythm is requested for a date
// preceding the birth date; the cycles are undefined there.
var ErrBeforeBirth = errors.New("target date precedes birth date")

// CycleValue computes one sinusoidal biorhythm cycle:
// round(sin(2*pi * (daysSinceBirth mod period) / period) * 100),
// yielding a value in [-100,100]. The cycle is periodic in its own
// period: CycleValue(days+period) == CycleValue(days).
func CycleValue(daysSinceBirth, period int) int {
	phase := float64(daysSinceBirth%period) / float64(period)
	return int(math.Round(math.Sin(2*math.Pi*phase) * 100))
}

// cycleState classifies a cycle value. A value within the critical band
// of zero is a transition point; otherwise positive is high and
// negative is low.
func cycleState(value, criticalBand int) CycleState {
	if value >= -criticalBand && value <= criticalBand {
		return CycleCritical
	}
	if value > 0 {
		return CycleHigh
	}
	return CycleLow
}

// scoreBiorhythm computes the three biorhythm cycles for the target
// date and the composite sub-score: the mean of the three cycle values
// rescaled from [-100,100] to [0,100].
func scoreBiorhythm(birthDate, targetDate time.Time, params *Params) (BiorhythmResult, error) {
	days := daykey.DaysBetween(birthDate, targetDate)
	if days < 0 {
		return BiorhythmResult{}, ErrBeforeBirth
	}

	physical := CycleReading{
		Name:   "physical",
		Period: PhysicalPeriod,
		Value:  CycleValue(days, PhysicalPeriod),
	}
	emotional := CycleReading{
		Name:   "emotional",
		Period: EmotionalPeriod,
		Value:  CycleValue(days, EmotionalPeriod),
	}
	intellectual := CycleReading{
		Name:   "intellectual",
		Period: IntellectualPeriod,
		Value:  CycleValue(days, IntellectualPeriod),
	}

	physical.State = cycleState(physical.Value, params.CriticalBand)
	emotional.State = cycleState(emotional.Value, params.CriticalBand)
	intellectual.State = cycleState(intellectual.Value, params.CriticalBand)

	average := float64(physical.Value+emotional.Value+intellectual.Value) / 3
	score := int(math.Round((average + 100) / 2))

	facts := []domain.Fact{
		{
			Subsystem: "biorhythm",
			Statement: fmt.Sprintf("Physical %s (%+d), emotional %s (%+d), intellectual %s (%+d).",
				physical.State, physical.Value,
				emotional.State, emotional.Value,
				intellectual.State, intellectual.Value),
		},
	}

	return BiorhythmResult{
		Physical:     physical,
		Emotional:    emotional,
		Intellectual: intellectual,
		Score:        score,
		Facts:        facts,
	}, nil
}
