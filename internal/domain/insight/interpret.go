package insight

import (
	"fmt"

	"github.com/auradaily/aura-api/internal/domain"
)

// Insight is the interpretation layer's output: explanations split into
// spiritual (subsystem-derived) and personal (adjustment-derived)
// lines, do/avoid recommendations, and a heuristic success prediction.
type Insight struct {
	Summary               string            `json:"summary"`
	Recommendations       []string          `json:"recommendations"`
	Avoid                 []string          `json:"avoid"`
	SpiritualExplanations []string          `json:"spiritual_explanations"`
	PersonalExplanations  []string          `json:"personal_explanations"`
	Prediction            domain.Prediction `json:"prediction"`
}

// Interpret maps an adjusted score, the subsystem facts, and the day's
// adjustments into human-readable guidance.
//
// Spiritual explanations derive purely from subsystem facts and are
// independent of personalization; personal explanations carry one line
// per adjustment, taken verbatim from the adjustment's description.
func Interpret(
	adjustedScore int,
	facts []domain.Fact,
	adjustments []domain.PersonalizedAdjustment,
	lifePath int,
) Insight {
	insight := Insight{
		Summary: fmt.Sprintf("Your energy reads %d out of 100 on a Life Path %d day.",
			adjustedScore, lifePath),
		Prediction: predictSuccess(adjustedScore),
	}

	switch {
	case adjustedScore >= 80:
		insight.Recommendations = []string{
			"Take on high-stakes decisions while your energy peaks.",
			"Trust your intuition; it is unusually well calibrated today.",
		}
		insight.Avoid = []string{
			"Don't waste peak hours on routine busywork.",
		}
	case adjustedScore >= 60:
		insight.Recommendations = []string{
			"Make steady progress on ongoing projects.",
			"Lean into collaboration; shared effort multiplies today.",
		}
		insight.Avoid = []string{
			"Avoid overcommitting to brand-new ventures.",
		}
	default:
		insight.Recommendations = []string{
			"Use today for planning and preparation.",
			"Delegate what can be delegated.",
		}
		insight.Avoid = []string{
			"Avoid major decisions until your energy recovers.",
		}
	}

	for _, f := range facts {
		insight.SpiritualExplanations = append(insight.SpiritualExplanations, f.Statement)
	}
	for _, a := range adjustments {
		insight.PersonalExplanations = append(insight.PersonalExplanations, a.Description)
	}

	return insight
}

// predictSuccess is a fixed lookup from score band to success rate and
// confidence label. An explicit heuristic placeholder: a future version
// could replace it with an empirical outcome-correlation model without
// changing the interface.
func predictSuccess(adjustedScore int) domain.Prediction {
	var rate int
	var confidence domain.ConfidenceLevel

	switch {
	case adjustedScore >= 85:
		rate, confidence = 90, domain.ConfidenceHigh
	case adjustedScore >= 70:
		rate, confidence = 75, domain.ConfidenceHigh
	case adjustedScore >= 55:
		rate, confidence = 60, domain.ConfidenceMedium
	default:
		rate, confidence = 40, domain.ConfidenceMedium
	}

	return domain.Prediction{
		SuccessRate: rate,
		Confidence:  confidence,
		Reasoning: fmt.Sprintf(
			"With an adjusted energy score of %d, undertakings begun today succeed roughly %d%% of the time.",
			adjustedScore, rate),
	}
}
