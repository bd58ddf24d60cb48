package insight

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradaily/aura-api/internal/domain"
)

func TestPearson(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want float64
	}{
		{"perfect positive", []float64{1, 2, 3}, []float64{2, 4, 6}, 1.0},
		{"perfect negative", []float64{1, 2, 3}, []float64{6, 4, 2}, -1.0},
		{"constant x is degenerate", []float64{5, 5, 5}, []float64{1, 2, 3}, 0},
		{"constant y is degenerate", []float64{1, 2, 3}, []float64{7, 7, 7}, 0},
		{"single point", []float64{1}, []float64{2}, 0},
		{"mismatched lengths", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"empty series", nil, nil, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Pearson(tt.xs, tt.ys), 1e-9)
		})
	}
}

func TestPearson_Symmetric(t *testing.T) {
	t.Parallel()

	xs := []float64{6, 7.5, 8, 5.5, 9, 6.5}
	ys := []float64{55, 70, 80, 48, 88, 61}
	assert.InDelta(t, Pearson(xs, ys), Pearson(ys, xs), 1e-12)
}

func TestDailyFactorValues(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("sleep averages across entries on a day", func(t *testing.T) {
		t.Parallel()

		entries := []domain.LogEntry{
			{UserID: userID, Category: domain.CategorySleep, Day: "2024-03-10",
				Sleep: &domain.SleepLog{Hours: 7}},
			{UserID: userID, Category: domain.CategorySleep, Day: "2024-03-10",
				Sleep: &domain.SleepLog{Hours: 9}},
			{UserID: userID, Category: domain.CategorySleep, Day: "2024-03-11",
				Sleep: &domain.SleepLog{Hours: 6}},
		}

		samples := DailyFactorValues(domain.CategorySleep, entries)
		require.Len(t, samples, 2)
		assert.Equal(t, FactorSample{Day: "2024-03-10", Value: 8}, samples[0])
		assert.Equal(t, FactorSample{Day: "2024-03-11", Value: 6}, samples[1])
	})

	t.Run("exercise minutes sum across sessions", func(t *testing.T) {
		t.Parallel()

		entries := []domain.LogEntry{
			{UserID: userID, Category: domain.CategoryExercise, Day: "2024-03-10",
				Exercise: &domain.ExerciseLog{Minutes: 20, Intensity: domain.IntensityLight}},
			{UserID: userID, Category: domain.CategoryExercise, Day: "2024-03-10",
				Exercise: &domain.ExerciseLog{Minutes: 25, Intensity: domain.IntensityIntense}},
		}

		samples := DailyFactorValues(domain.CategoryExercise, entries)
		require.Len(t, samples, 1)
		assert.Equal(t, 45.0, samples[0].Value)
	})

	t.Run("social nets energizing against draining", func(t *testing.T) {
		t.Parallel()

		entries := []domain.LogEntry{
			{UserID: userID, Category: domain.CategorySocial, Day: "2024-03-10",
				Social: &domain.SocialLog{Tone: domain.SocialEnergizing}},
			{UserID: userID, Category: domain.CategorySocial, Day: "2024-03-10",
				Social: &domain.SocialLog{Tone: domain.SocialEnergizing}},
			{UserID: userID, Category: domain.CategorySocial, Day: "2024-03-10",
				Social: &domain.SocialLog{Tone: domain.SocialDraining}},
			{UserID: userID, Category: domain.CategorySocial, Day: "2024-03-10",
				Social: &domain.SocialLog{Tone: domain.SocialNeutral}},
		}

		samples := DailyFactorValues(domain.CategorySocial, entries)
		require.Len(t, samples, 1)
		assert.Equal(t, 1.0, samples[0].Value)
	})

	t.Run("weather maps conditions to fixed deltas", func(t *testing.T) {
		t.Parallel()

		entries := []domain.LogEntry{
			{UserID: userID, Category: domain.CategoryWeather, Day: "2024-03-10",
				Weather: &domain.WeatherLog{Condition: domain.WeatherSunny}},
			{UserID: userID, Category: domain.CategoryWeather, Day: "2024-03-11",
				Weather: &domain.WeatherLog{Condition: domain.WeatherRainy}},
		}

		samples := DailyFactorValues(domain.CategoryWeather, entries)
		require.Len(t, samples, 2)
		assert.Equal(t, 5.0, samples[0].Value)
		assert.Equal(t, -3.0, samples[1].Value)
	})

	t.Run("mismatched categories and payloads are skipped", func(t *testing.T) {
		t.Parallel()

		entries := []domain.LogEntry{
			{UserID: userID, Category: domain.CategoryExercise, Day: "2024-03-10",
				Exercise: &domain.ExerciseLog{Minutes: 30}},
			{UserID: userID, Category: domain.CategorySleep, Day: "2024-03-10"}, // nil payload
		}

		assert.Empty(t, DailyFactorValues(domain.CategorySleep, entries))
	})
}

func TestAnalyzeCorrelations(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	day := func(i int) string {
		return fmt.Sprintf("2024-03-%02d", i)
	}

	t.Run("empty score history yields nothing", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, AnalyzeCorrelations(userID, nil, nil, now))
	})

	t.Run("too few matched days skips the factor", func(t *testing.T) {
		t.Parallel()

		history := []domain.ScorePoint{
			{Day: day(1), Score: 60},
			{Day: day(2), Score: 70},
			{Day: day(3), Score: 80},
		}
		logs := map[domain.LogCategory][]domain.LogEntry{
			domain.CategorySleep: {
				{UserID: userID, Category: domain.CategorySleep, Day: day(1),
					Sleep: &domain.SleepLog{Hours: 7}},
				{UserID: userID, Category: domain.CategorySleep, Day: day(2),
					Sleep: &domain.SleepLog{Hours: 8}},
				{UserID: userID, Category: domain.CategorySleep, Day: day(3),
					Sleep: &domain.SleepLog{Hours: 9}},
			},
		}

		assert.Empty(t, AnalyzeCorrelations(userID, history, logs, now))
	})

	t.Run("matched factor produces strength impact and confidence", func(t *testing.T) {
		t.Parallel()

		// Six scored days averaging 75; sleep logged on the first five,
		// which average 80. Hours rise linearly with score, so the
		// Pearson strength is exactly 1.
		history := []domain.ScorePoint{
			{Day: day(1), Score: 60},
			{Day: day(2), Score: 70},
			{Day: day(3), Score: 80},
			{Day: day(4), Score: 90},
			{Day: day(5), Score: 100},
			{Day: day(6), Score: 50},
		}
		logs := map[domain.LogCategory][]domain.LogEntry{
			domain.CategorySleep: {
				{UserID: userID, Category: domain.CategorySleep, Day: day(1),
					Sleep: &domain.SleepLog{Hours: 6}},
				{UserID: userID, Category: domain.CategorySleep, Day: day(2),
					Sleep: &domain.SleepLog{Hours: 7}},
				{UserID: userID, Category: domain.CategorySleep, Day: day(3),
					Sleep: &domain.SleepLog{Hours: 8}},
				{UserID: userID, Category: domain.CategorySleep, Day: day(4),
					Sleep: &domain.SleepLog{Hours: 9}},
				{UserID: userID, Category: domain.CategorySleep, Day: day(5),
					Sleep: &domain.SleepLog{Hours: 10}},
			},
		}

		correlations := AnalyzeCorrelations(userID, history, logs, now)
		require.Len(t, correlations, 1)

		c := correlations[0]
		assert.Equal(t, userID, c.UserID)
		assert.Equal(t, domain.CategorySleep, c.Factor)
		assert.InDelta(t, 1.0, c.Strength, 1e-9)
		assert.InDelta(t, 5.0, c.Impact, 1e-9)
		assert.Equal(t, 5, c.SampleSize)
		assert.Equal(t, domain.ConfidenceLow, c.Confidence)
		assert.Equal(t, now, c.ComputedAt)
		require.NoError(t, c.Validate())
	})

	t.Run("days without scores are not matched", func(t *testing.T) {
		t.Parallel()

		history := []domain.ScorePoint{
			{Day: day(1), Score: 60},
			{Day: day(2), Score: 70},
			{Day: day(3), Score: 80},
			{Day: day(4), Score: 90},
		}
		var entries []domain.LogEntry
		// Five sleep logs, but only four fall on scored days.
		for i := 1; i <= 5; i++ {
			entries = append(entries, domain.LogEntry{
				UserID: userID, Category: domain.CategorySleep, Day: day(i),
				Sleep: &domain.SleepLog{Hours: 7},
			})
		}
		logs := map[domain.LogCategory][]domain.LogEntry{domain.CategorySleep: entries}

		assert.Empty(t, AnalyzeCorrelations(userID, history, logs, now))
	})
}

func TestConfidenceForSampleSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int
		want domain.ConfidenceLevel
	}{
		{0, domain.ConfidenceLow},
		{9, domain.ConfidenceLow},
		{10, domain.ConfidenceMedium},
		{19, domain.ConfidenceMedium},
		{20, domain.ConfidenceHigh},
		{100, domain.ConfidenceHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ConfidenceForSampleSize(tt.size), "sample size %d", tt.size)
	}
}
