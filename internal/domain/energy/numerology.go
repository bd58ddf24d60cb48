package energy

import (
	"fmt"
	"time"

	"github.com/auradaily/aura-api/internal/domain"
)

// NumerologyResult holds the numerological facts and sub-score for one
// (birth date, target date) pair.
type NumerologyResult struct {
	LifePath    int
	PersonalDay int
	Meaning     string
	Score       int
	Facts       []domain.Fact
}

// personalDayMeanings is the fixed meaning table for Personal Day
// numbers 1-9.
var personalDayMeanings = map[int]string{
	1: "new beginnings",
	2: "cooperation and partnership",
	3: "creative expression",
	4: "foundations and steady work",
	5: "change and movement",
	6: "harmony and responsibility",
	7: "introspection and analysis",
	8: "achievement and ambition",
	9: "completion and release",
}

// personalDayEnergy maps each Personal Day number to its fixed energy
// sub-score. Achievement days (8) carry the strongest charge; reflective
// days (7, 9) the weakest.
var personalDayEnergy = map[int]int{
	1: 85,
	2: 60,
	3: 75,
	4: 55,
	5: 80,
	6: 65,
	7: 50,
	8: 90,
	9: 58,
}

// ReduceToSingleDigit collapses a positive integer to a single digit in
// [1,9] by repeated digit-summing. Master numbers (11, 22) are not
// special-cased: they reduce fully like any other value. The function
// is idempotent on its own output.
func ReduceToSingleDigit(n int) int {
	if n < 1 {
		return 1
	}
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}

// LifePathNumber derives the Life Path number (1-9) from a birth date:
// the day, month, and year are each reduced to a single digit, summed,
// and the sum reduced again.
func LifePathNumber(birthDate time.Time) int {
	b := birthDate.UTC()
	day := ReduceToSingleDigit(b.Day())
	month := ReduceToSingleDigit(int(b.Month()))
	year := ReduceToSingleDigit(b.Year())
	return ReduceToSingleDigit(day + month + year)
}

// PersonalDayNumber derives the Personal Day number (1-9) for a target
// date by reducing the sum of its day, month, and year.
func PersonalDayNumber(targetDate time.Time) int {
	t := targetDate.UTC()
	return ReduceToSingleDigit(t.Day() + int(t.Month()) + t.Year())
}

// scoreNumerology computes the numerology subsystem result for the
// given birth and target dates. It is a total function: any pair of
// valid dates produces a result.
func scoreNumerology(birthDate, targetDate time.Time) NumerologyResult {
	lifePath := LifePathNumber(birthDate)
	personalDay := PersonalDayNumber(targetDate)
	meaning := personalDayMeanings[personalDay]

	return NumerologyResult{
		LifePath:    lifePath,
		PersonalDay: personalDay,
		Meaning:     meaning,
		Score:       personalDayEnergy[personalDay],
		Facts: []domain.Fact{
			{
				Subsystem: "numerology",
				Statement: fmt.Sprintf("Life Path %d meets a Personal Day %d of %s.",
					lifePath, personalDay, meaning),
			},
		},
	}
}
