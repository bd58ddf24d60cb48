// Package insight holds the personalization core: correlation analysis
// between lifestyle factors and historical energy scores, per-factor
// score adjustments, and the interpretation layer that turns both into
// human-readable guidance. Everything here is a total function over
// plain data; gathering inputs is the caller's concern.
package insight

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
)

// MinMatchedPoints is the minimum number of date-matched
// (factor value, score) observations required before a correlation is
// emitted at all. Below this the factor is skipped, which is a normal
// outcome, not an error.
const MinMatchedPoints = 5

// FactorSample is one calendar day's numeric value for a lifestyle
// factor, derived from that day's log entries.
type FactorSample struct {
	Day   string
	Value float64
}

// weatherConditionValue assigns each condition the same fixed delta the
// adjustment calculator uses, giving the correlation engine a numeric
// series to work with.
func weatherConditionValue(condition domain.WeatherCondition) float64 {
	switch condition {
	case domain.WeatherSunny:
		return 5
	case domain.WeatherCloudy:
		return -2
	case domain.WeatherRainy:
		return -3
	default:
		return 0
	}
}

// DailyFactorValues reduces a category's log entries to one numeric
// value per calendar day:
//
//   - sleep: hours slept
//   - exercise, meditation: total minutes across sessions
//   - nutrition: mean meal quality
//   - social: net count of energizing minus draining interactions
//   - weather: the condition's fixed delta value
//   - biometric: resting heart rate
//
// Entries whose payload does not match their category are skipped.
func DailyFactorValues(category domain.LogCategory, entries []domain.LogEntry) []FactorSample {
	type accumulator struct {
		sum   float64
		count int
	}
	byDay := make(map[string]*accumulator)
	var order []string

	add := func(day string, value float64) {
		acc, ok := byDay[day]
		if !ok {
			acc = &accumulator{}
			byDay[day] = acc
			order = append(order, day)
		}
		acc.sum += value
		acc.count++
	}

	for _, e := range entries {
		if e.Category != category {
			continue
		}
		switch category {
		case domain.CategorySleep:
			if e.Sleep != nil {
				add(e.Day, e.Sleep.Hours)
			}
		case domain.CategoryExercise:
			if e.Exercise != nil {
				add(e.Day, float64(e.Exercise.Minutes))
			}
		case domain.CategoryMeditation:
			if e.Meditation != nil {
				add(e.Day, float64(e.Meditation.Minutes))
			}
		case domain.CategoryNutrition:
			if e.Nutrition != nil {
				add(e.Day, e.Nutrition.Quality)
			}
		case domain.CategorySocial:
			if e.Social != nil {
				switch e.Social.Tone {
				case domain.SocialEnergizing:
					add(e.Day, 1)
				case domain.SocialDraining:
					add(e.Day, -1)
				default:
					add(e.Day, 0)
				}
			}
		case domain.CategoryWeather:
			if e.Weather != nil {
				add(e.Day, weatherConditionValue(e.Weather.Condition))
			}
		case domain.CategoryBiometric:
			if e.Biometric != nil {
				add(e.Day, float64(e.Biometric.RestingHeartRate))
			}
		}
	}

	samples := make([]FactorSample, 0, len(order))
	for _, day := range order {
		acc := byDay[day]
		value := acc.sum
		// Nutrition quality averages across meals; the additive
		// categories (minutes, net interactions) sum.
		if category == domain.CategoryNutrition || category == domain.CategorySleep ||
			category == domain.CategoryWeather || category == domain.CategoryBiometric {
			value = acc.sum / float64(acc.count)
		}
		samples = append(samples, FactorSample{Day: day, Value: value})
	}
	return samples
}

// Pearson computes the Pearson correlation coefficient
//
//	r = (n*Σxy − Σx*Σy) / sqrt((n*Σx²−(Σx)²)(n*Σy²−(Σy)²))
//
// between two equal-length series. A degenerate series (constant x or
// y, or fewer than two points) makes the denominator zero; by
// definition r is 0 in that case rather than a numeric error. Pearson
// is symmetric in its arguments.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
	}

	fn := float64(n)
	denominator := math.Sqrt((fn*sumXX - sumX*sumX) * (fn*sumYY - sumY*sumY))
	if denominator == 0 {
		return 0
	}

	return (fn*sumXY - sumX*sumY) / denominator
}

// AnalyzeCorrelations recomputes the full set of factor correlations
// for a user from their score history and lifestyle logs.
//
// For each factor category, matched (factor value, score) pairs are
// built by calendar-day join between the factor's daily values and the
// score history. Factors with fewer than MinMatchedPoints matched days
// are skipped entirely.
//
// Impact is the mean of (score_i − meanScore) over the matched days,
// where meanScore is the mean over the whole score history. It is a
// proxy for the factor's typical marginal effect, not a regression
// coefficient; this simplification is deliberate and must be preserved.
//
// Confidence is a pure function of the matched sample size and is the
// sole downstream gate; Strength ranks and informs but never gates.
func AnalyzeCorrelations(
	userID uuid.UUID,
	scoreHistory []domain.ScorePoint,
	logs map[domain.LogCategory][]domain.LogEntry,
	now time.Time,
) []domain.Correlation {
	if len(scoreHistory) == 0 {
		return nil
	}

	scoreByDay := make(map[string]float64, len(scoreHistory))
	var totalScore float64
	for _, p := range scoreHistory {
		scoreByDay[p.Day] = p.Score
		totalScore += p.Score
	}
	meanScore := totalScore / float64(len(scoreHistory))

	var correlations []domain.Correlation
	for _, category := range domain.AllLogCategories {
		samples := DailyFactorValues(category, logs[category])

		var factorValues, scores []float64
		for _, s := range samples {
			score, ok := scoreByDay[s.Day]
			if !ok {
				continue
			}
			factorValues = append(factorValues, s.Value)
			scores = append(scores, score)
		}

		if len(factorValues) < MinMatchedPoints {
			continue
		}

		var deviationSum float64
		for _, score := range scores {
			deviationSum += score - meanScore
		}

		correlations = append(correlations, domain.Correlation{
			UserID:     userID,
			Factor:     category,
			Strength:   Pearson(factorValues, scores),
			Impact:     deviationSum / float64(len(scores)),
			SampleSize: len(factorValues),
			Confidence: domain.ConfidenceForSampleSize(len(factorValues)),
			ComputedAt: now,
		})
	}

	return correlations
}
