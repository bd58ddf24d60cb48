package insight

import (
	"fmt"
	"math"

	"github.com/auradaily/aura-api/internal/domain"
)

// correlationBonusCap bounds how far a trusted correlation can push a
// factor's heuristic adjustment in either direction.
const correlationBonusCap = 5

// ComputeAdjustments derives the signed per-factor score adjustments
// for one day from that day's log entries, independent per factor
// category. A factor with no log entry on the day contributes no
// adjustment entry at all (absence, not a zero-valued entry).
//
// The banded heuristics below are the built-in defaults. When a stored
// correlation with medium or high confidence exists for a factor, its
// average impact (scaled by strength and capped) nudges the heuristic;
// low-confidence correlations are excluded entirely, having
// insufficient statistical support.
func ComputeAdjustments(
	entries []domain.LogEntry,
	correlations []domain.Correlation,
) []domain.PersonalizedAdjustment {
	trusted := make(map[domain.LogCategory]domain.Correlation)
	for _, c := range correlations {
		if c.Trusted() {
			trusted[c.Factor] = c
		}
	}

	grouped := make(map[domain.LogCategory][]domain.LogEntry)
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}

	var adjustments []domain.PersonalizedAdjustment
	appendIf := func(adj *domain.PersonalizedAdjustment) {
		if adj == nil {
			return
		}
		if c, ok := trusted[adj.Factor]; ok {
			bonus := correlationBonus(c)
			if bonus != 0 {
				adj.Adjustment += bonus
				adj.Description += fmt.Sprintf(
					" Your history links %s to a %+.1f point average shift.",
					adj.Factor, c.Impact)
			}
		}
		adjustments = append(adjustments, *adj)
	}

	appendIf(sleepAdjustment(grouped[domain.CategorySleep]))
	appendIf(meditationAdjustment(grouped[domain.CategoryMeditation]))
	appendIf(exerciseAdjustment(grouped[domain.CategoryExercise]))
	appendIf(weatherAdjustment(grouped[domain.CategoryWeather]))
	appendIf(socialAdjustment(grouped[domain.CategorySocial]))

	return adjustments
}

// correlationBonus converts a trusted correlation into a small signed
// nudge: the average impact scaled by the correlation strength, rounded
// and capped to +/-correlationBonusCap.
func correlationBonus(c domain.Correlation) int {
	bonus := int(math.Round(c.Impact * math.Abs(c.Strength)))
	if bonus > correlationBonusCap {
		return correlationBonusCap
	}
	if bonus < -correlationBonusCap {
		return -correlationBonusCap
	}
	return bonus
}

// sleepAdjustment bands the night's sleep by hours (>=8 +10, 7-7.9 +5,
// 6-6.9 0, <6 -10), with a further +/-5 for excellent or poor reported
// quality.
func sleepAdjustment(entries []domain.LogEntry) *domain.PersonalizedAdjustment {
	var sleep *domain.SleepLog
	for _, e := range entries {
		if e.Sleep != nil {
			sleep = e.Sleep
		}
	}
	if sleep == nil {
		return nil
	}

	var points int
	switch {
	case sleep.Hours >= 8:
		points = 10
	case sleep.Hours >= 7:
		points = 5
	case sleep.Hours >= 6:
		points = 0
	default:
		points = -10
	}

	switch sleep.Quality {
	case domain.SleepQualityExcellent:
		points += 5
	case domain.SleepQualityPoor:
		points -= 5
	}

	description := fmt.Sprintf("Slept %.1f hours", sleep.Hours)
	if sleep.Quality != "" {
		description += fmt.Sprintf(" with %s quality", sleep.Quality)
	}
	description += "."

	recommendation := "Your sleep is fueling your energy. Keep the same bedtime routine."
	if points <= 0 {
		recommendation = "Aim for at least 8 hours tonight and wind down earlier."
	}

	return &domain.PersonalizedAdjustment{
		Factor:         domain.CategorySleep,
		Description:    description,
		Adjustment:     points,
		Recommendation: recommendation,
	}
}

// meditationAdjustment bands the day's total meditation minutes
// (>=20 +8, 10-19 +5, 1-9 +3).
func meditationAdjustment(entries []domain.LogEntry) *domain.PersonalizedAdjustment {
	totalMinutes := 0
	sessions := 0
	for _, e := range entries {
		if e.Meditation != nil {
			totalMinutes += e.Meditation.Minutes
			sessions++
		}
	}
	if sessions == 0 {
		return nil
	}

	var points int
	switch {
	case totalMinutes >= 20:
		points = 8
	case totalMinutes >= 10:
		points = 5
	case totalMinutes >= 1:
		points = 3
	}

	recommendation := "Meditation is grounding you. Continue your practice tomorrow."
	if points < 5 {
		recommendation = "Even ten more minutes of stillness would deepen the effect."
	}

	return &domain.PersonalizedAdjustment{
		Factor:         domain.CategoryMeditation,
		Description:    fmt.Sprintf("Meditated %d minutes across %d session(s).", totalMinutes, sessions),
		Adjustment:     points,
		Recommendation: recommendation,
	}
}

// exerciseAdjustment bands the day's total exercise minutes, with a
// higher band when any session was intense (intense and >=30min +10,
// >=30min +7, >=15min +4, else 0).
func exerciseAdjustment(entries []domain.LogEntry) *domain.PersonalizedAdjustment {
	totalMinutes := 0
	sessions := 0
	hadIntense := false
	for _, e := range entries {
		if e.Exercise != nil {
			totalMinutes += e.Exercise.Minutes
			sessions++
			if e.Exercise.Intensity == domain.IntensityIntense {
				hadIntense = true
			}
		}
	}
	if sessions == 0 {
		return nil
	}

	var points int
	switch {
	case hadIntense && totalMinutes >= 30:
		points = 10
	case totalMinutes >= 30:
		points = 7
	case totalMinutes >= 15:
		points = 4
	default:
		points = 0
	}

	recommendation := "Movement is amplifying your energy. Keep the momentum."
	if points == 0 {
		recommendation = "A longer session, even a brisk 30-minute walk, would lift your score."
	}

	return &domain.PersonalizedAdjustment{
		Factor:         domain.CategoryExercise,
		Description:    fmt.Sprintf("Exercised %d minutes across %d session(s).", totalMinutes, sessions),
		Adjustment:     points,
		Recommendation: recommendation,
	}
}

// weatherAdjustment applies the fixed per-condition deltas
// (sunny +5, cloudy -2, rainy -3, others 0).
func weatherAdjustment(entries []domain.LogEntry) *domain.PersonalizedAdjustment {
	var weather *domain.WeatherLog
	for _, e := range entries {
		if e.Weather != nil {
			weather = e.Weather
		}
	}
	if weather == nil {
		return nil
	}

	var points int
	switch weather.Condition {
	case domain.WeatherSunny:
		points = 5
	case domain.WeatherCloudy:
		points = -2
	case domain.WeatherRainy:
		points = -3
	default:
		points = 0
	}

	recommendation := "Get outside and soak up the daylight while it lasts."
	if points < 0 {
		recommendation = "Gray skies drain you a little. Bring extra light indoors."
	}

	return &domain.PersonalizedAdjustment{
		Factor:         domain.CategoryWeather,
		Description:    fmt.Sprintf("Weather logged as %s.", weather.Condition),
		Adjustment:     points,
		Recommendation: recommendation,
	}
}

// socialAdjustment net-sums the day's interactions: +3 per energizing,
// -5 per draining.
func socialAdjustment(entries []domain.LogEntry) *domain.PersonalizedAdjustment {
	energizing, draining, total := 0, 0, 0
	for _, e := range entries {
		if e.Social == nil {
			continue
		}
		total++
		switch e.Social.Tone {
		case domain.SocialEnergizing:
			energizing++
		case domain.SocialDraining:
			draining++
		}
	}
	if total == 0 {
		return nil
	}

	points := energizing*3 - draining*5

	recommendation := "The right company is lifting you. Seek those people out again."
	if points <= 0 {
		recommendation = "Protect your energy: limit time with draining interactions today."
	}

	return &domain.PersonalizedAdjustment{
		Factor: domain.CategorySocial,
		Description: fmt.Sprintf("Logged %d energizing and %d draining interaction(s).",
			energizing, draining),
		Adjustment:     points,
		Recommendation: recommendation,
	}
}
