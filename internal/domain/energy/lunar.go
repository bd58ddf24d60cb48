package energy

import (
	"fmt"
	"math"
	"time"

	"github.com/auradaily/aura-api/internal/domain"
)

// MoonPhase labels one of the eight principal lunar phases.
type MoonPhase string

// Moon phases in cycle order.
const (
	PhaseNew            MoonPhase = "new_moon"
	PhaseWaxingCrescent MoonPhase = "waxing_crescent"
	PhaseFirstQuarter   MoonPhase = "first_quarter"
	PhaseWaxingGibbous  MoonPhase = "waxing_gibbous"
	PhaseFull           MoonPhase = "full_moon"
	PhaseWaningGibbous  MoonPhase = "waning_gibbous"
	PhaseLastQuarter    MoonPhase = "last_quarter"
	PhaseWaningCrescent MoonPhase = "waning_crescent"
)

// LunarResult holds the lunar subsystem facts and sub-score.
type LunarResult struct {
	Phase     MoonPhase
	Age       float64 // days into the synodic cycle
	Intensity float64 // base intensity before amplification
	Amplified bool
	Score     int
	Facts     []domain.Fact
}

// Synodic month length in days, and a reference new moon
// (2000-01-06 18:14 UTC). The model is a self-consistent approximation,
// not an ephemeris.
const synodicMonth = 29.530588853

var lunarEpoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// phaseIntensity maps each phase to its base intensity sub-score.
// The full moon peaks; the waning crescent is the quiet trough.
var phaseIntensity = map[MoonPhase]float64{
	PhaseNew:            45,
	PhaseWaxingCrescent: 55,
	PhaseFirstQuarter:   62,
	PhaseWaxingGibbous:  70,
	PhaseFull:           78,
	PhaseWaningGibbous:  62,
	PhaseLastQuarter:    52,
	PhaseWaningCrescent: 42,
}

// phaseNames provides display names for fact statements.
var phaseNames = map[MoonPhase]string{
	PhaseNew:            "New Moon",
	PhaseWaxingCrescent: "Waxing Crescent",
	PhaseFirstQuarter:   "First Quarter",
	PhaseWaxingGibbous:  "Waxing Gibbous",
	PhaseFull:           "Full Moon",
	PhaseWaningGibbous:  "Waning Gibbous",
	PhaseLastQuarter:    "Last Quarter",
	PhaseWaningCrescent: "Waning Crescent",
}

// MoonPhaseOn returns the moon phase label and cycle age for the given
// date, from the date's distance into the synodic cycle anchored at the
// reference new moon.
func MoonPhaseOn(date time.Time) (MoonPhase, float64) {
	days := date.UTC().Sub(lunarEpoch).Hours() / 24
	age := math.Mod(days, synodicMonth)
	if age < 0 {
		age += synodicMonth
	}

	// Eight equal slices of the cycle, centered so that ages within
	// half a slice of 0 (or the cycle end) read as the new moon.
	slice := synodicMonth / 8
	index := int(math.Floor((age+slice/2)/slice)) % 8

	phases := [8]MoonPhase{
		PhaseNew, PhaseWaxingCrescent, PhaseFirstQuarter, PhaseWaxingGibbous,
		PhaseFull, PhaseWaningGibbous, PhaseLastQuarter, PhaseWaningCrescent,
	}
	return phases[index], age
}

// scoreLunar computes the lunar subsystem result for the target date.
//
// Personality-conditional weighting is an explicit design rule: the
// stronger-effect phases (full and new moon by default) apply a 2x
// intensity multiplier for users whose Life Path number is 6 or 7,
// reflecting those numbers' traditional lunar sensitivity. The result
// is clamped to [0,100] after amplification.
func scoreLunar(targetDate time.Time, lifePath int, params *Params) LunarResult {
	phase, age := MoonPhaseOn(targetDate)
	intensity := phaseIntensity[phase]

	amplified := params.amplifiesPhase(phase) && params.amplifiesLifePath(lifePath)
	score := intensity
	if amplified {
		score *= params.AmplifiedPhaseMultiplier
	}
	if score > 100 {
		score = 100
	}

	statement := fmt.Sprintf("The %s (day %.0f of the lunar cycle) sets the tide.",
		phaseNames[phase], age)
	if amplified {
		statement = fmt.Sprintf(
			"The %s resonates strongly with Life Path %d, doubling its influence.",
			phaseNames[phase], lifePath)
	}

	return LunarResult{
		Phase:     phase,
		Age:       age,
		Intensity: intensity,
		Amplified: amplified,
		Score:     int(math.Round(score)),
		Facts: []domain.Fact{
			{Subsystem: "lunar", Statement: statement},
		},
	}
}
