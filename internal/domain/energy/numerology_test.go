package energy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceToSingleDigit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input int
		want  int
	}{
		{1, 1},
		{5, 5},
		{9, 9},
		{10, 1},
		{11, 2},  // master numbers reduce like any other value
		{22, 4},
		{38, 2},  // 3+8=11, 1+1=2
		{99, 9},  // 9+9=18, 1+8=9
		{1990, 1},
		{2024, 8},
		{0, 1},   // non-positive input clamps to 1
		{-7, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReduceToSingleDigit(tt.input), "input %d", tt.input)
	}
}

func TestReduceToSingleDigit_Idempotent(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 100; n++ {
		reduced := ReduceToSingleDigit(n)
		assert.Equal(t, reduced, ReduceToSingleDigit(reduced))
		assert.GreaterOrEqual(t, reduced, 1)
		assert.LessOrEqual(t, reduced, 9)
	}
}

func TestLifePathNumber(t *testing.T) {
	t.Parallel()

	// 1990-05-15: day 15->6, month 5->5, year 1990->1, sum 12->3.
	birth := time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, LifePathNumber(birth))

	// 2000-01-01: day 1, month 1, year 2000->2, sum 4.
	assert.Equal(t, 4, LifePathNumber(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPersonalDayNumber(t *testing.T) {
	t.Parallel()

	// 2024-03-10: 10+3+2024 = 2037 -> 12 -> 3.
	target := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, PersonalDayNumber(target))
}

func TestScoreNumerology(t *testing.T) {
	t.Parallel()

	birth := time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC)
	target := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	result := scoreNumerology(birth, target)

	assert.Equal(t, 3, result.LifePath)
	assert.Equal(t, 3, result.PersonalDay)
	assert.Equal(t, "creative expression", result.Meaning)
	assert.Equal(t, 75, result.Score)
	require.Len(t, result.Facts, 1)
	assert.Equal(t, "numerology", result.Facts[0].Subsystem)
	assert.Contains(t, result.Facts[0].Statement, "Life Path 3")
	assert.Contains(t, result.Facts[0].Statement, "Personal Day 3")
}

func TestScoreNumerology_EveryPersonalDayHasMeaningAndEnergy(t *testing.T) {
	t.Parallel()

	for day := 1; day <= 9; day++ {
		assert.NotEmpty(t, personalDayMeanings[day], "meaning for day %d", day)
		assert.Greater(t, personalDayEnergy[day], 0, "energy for day %d", day)
		assert.LessOrEqual(t, personalDayEnergy[day], 100, "energy for day %d", day)
	}
}
