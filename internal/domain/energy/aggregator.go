package energy

import (
	"math"
	"time"

	"github.com/auradaily/aura-api/internal/domain"
)

// Composite is the aggregated output of all subsystem scorers for one
// (profile, target date) pair: the base energy score before
// personalization, its categorical type, supporting facts, the
// individual subsystem results, and any subsystem failures.
//
// The computation is deterministic: identical birth data and target
// date always produce an identical Composite. Failures are collected
// as diagnostics rather than aborting the computation.
type Composite struct {
	BaseScore   int
	EnergyType  domain.EnergyType
	Description string
	Facts       []domain.Fact

	Numerology *NumerologyResult
	Lunar      *LunarResult
	Astrology  *AstrologyResult
	Biorhythm  *BiorhythmResult

	Failures []domain.SubsystemFailure
}

// energyTypeDescriptions maps each energy type to its reading
// description.
var energyTypeDescriptions = map[domain.EnergyType]string{
	domain.EnergyTypeRadiant:    "Exceptional vitality flows through every undertaking today.",
	domain.EnergyTypeDynamic:    "Strong, forward-moving energy favors action and initiative.",
	domain.EnergyTypeBalanced:   "Even, workable energy suits steady effort and collaboration.",
	domain.EnergyTypeReflective: "Inward-turning energy rewards planning over pushing.",
	domain.EnergyTypeRestful:    "Low-tide energy calls for recovery and gentle routines.",
}

// classifyEnergy maps a base score to its categorical energy type.
func classifyEnergy(score int) domain.EnergyType {
	switch {
	case score >= 85:
		return domain.EnergyTypeRadiant
	case score >= 70:
		return domain.EnergyTypeDynamic
	case score >= 55:
		return domain.EnergyTypeBalanced
	case score >= 40:
		return domain.EnergyTypeReflective
	default:
		return domain.EnergyTypeRestful
	}
}

// calculateComposite runs every subsystem scorer and blends their
// sub-scores into one base score in [0,100].
//
// Each subsystem contributes its score with the weight configured in
// params. Weights are renormalized over the subsystems that actually
// produced a result, so a failed subsystem contributes no data instead
// of dragging the composite down; its failure is recorded in
// Composite.Failures. The numerology result is computed first because
// the lunar scorer's amplification rule depends on the Life Path number.
func calculateComposite(profile *domain.Profile, targetDate time.Time, params *Params) *Composite {
	composite := &Composite{}

	var weightedSum, totalWeight float64

	numerology := scoreNumerology(profile.BirthDate, targetDate)
	composite.Numerology = &numerology
	composite.Facts = append(composite.Facts, numerology.Facts...)
	weightedSum += float64(numerology.Score) * params.NumerologyWeight
	totalWeight += params.NumerologyWeight

	lunar := scoreLunar(targetDate, numerology.LifePath, params)
	composite.Lunar = &lunar
	composite.Facts = append(composite.Facts, lunar.Facts...)
	weightedSum += float64(lunar.Score) * params.LunarWeight
	totalWeight += params.LunarWeight

	astrology := scoreAstrology(profile.BirthDate, targetDate, params)
	composite.Astrology = &astrology
	composite.Facts = append(composite.Facts, astrology.Facts...)
	weightedSum += float64(astrology.Score) * params.AstrologyWeight
	totalWeight += params.AstrologyWeight

	biorhythm, err := scoreBiorhythm(profile.BirthDate, targetDate, params)
	if err != nil {
		composite.Failures = append(composite.Failures, domain.SubsystemFailure{
			Subsystem: "biorhythm",
			Reason:    err.Error(),
		})
	} else {
		composite.Biorhythm = &biorhythm
		composite.Facts = append(composite.Facts, biorhythm.Facts...)
		weightedSum += float64(biorhythm.Score) * params.BiorhythmWeight
		totalWeight += params.BiorhythmWeight
	}

	if totalWeight > 0 {
		composite.BaseScore = domain.ClampScore(int(math.Round(weightedSum / totalWeight)))
	}

	composite.EnergyType = classifyEnergy(composite.BaseScore)
	composite.Description = energyTypeDescriptions[composite.EnergyType]

	return composite
}
