package energy

import (
	"fmt"
	"math"
	"time"

	"github.com/auradaily/aura-api/internal/domain"
)

// ZodiacSign is one of the twelve signs of the tropical zodiac.
type ZodiacSign string

// Zodiac signs in calendar order.
const (
	Aries       ZodiacSign = "aries"
	Taurus      ZodiacSign = "taurus"
	Gemini      ZodiacSign = "gemini"
	Cancer      ZodiacSign = "cancer"
	Leo         ZodiacSign = "leo"
	Virgo       ZodiacSign = "virgo"
	Libra       ZodiacSign = "libra"
	Scorpio     ZodiacSign = "scorpio"
	Sagittarius ZodiacSign = "sagittarius"
	Capricorn   ZodiacSign = "capricorn"
	Aquarius    ZodiacSign = "aquarius"
	Pisces      ZodiacSign = "pisces"
)

// Element is a sign's classical element.
type Element string

// Classical elements.
const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

// Planet identifies one of the modeled bodies.
type Planet string

// Modeled planets (the Sun and Moon are treated as planets here, as is
// traditional in astrology).
const (
	Sun     Planet = "sun"
	Moon    Planet = "moon"
	Mercury Planet = "mercury"
	Venus   Planet = "venus"
	Mars    Planet = "mars"
)

// AspectType classifies the angular relationship between two planets.
type AspectType string

// Recognized aspect types with their exact angles.
const (
	Conjunction AspectType = "conjunction" // 0 degrees
	Sextile     AspectType = "sextile"     // 60 degrees
	Square      AspectType = "square"      // 90 degrees
	Trine       AspectType = "trine"       // 120 degrees
	Opposition  AspectType = "opposition"  // 180 degrees
)

// Aspect is an angular relationship between two planets on the target
// date, classified as harmonious or challenging.
type Aspect struct {
	First      Planet
	Second     Planet
	Type       AspectType
	Separation float64 // actual angular separation in degrees
	Harmonious bool
}

// BusinessImpact scores four kinds of professional activity for the
// day, each 0-100.
type BusinessImpact struct {
	Meetings     int `json:"meetings"`
	Decisions    int `json:"decisions"`
	Negotiations int `json:"negotiations"`
	Launches     int `json:"launches"`
}

// AstrologyResult holds the astrology subsystem facts and sub-score.
type AstrologyResult struct {
	SunSign    ZodiacSign
	Longitudes map[Planet]float64
	Aspects    []Aspect
	Business   BusinessImpact
	Score      int
	Facts      []domain.Fact
}

// Orbital periods in days. These drive simple mean-motion longitude
// approximations (constant angular velocity), deliberately not a true
// ephemeris: the model only needs to be deterministic and
// self-consistent.
var orbitalPeriods = map[Planet]float64{
	Sun:     365.256363,
	Moon:    27.321661,
	Mercury: 87.9691,
	Venus:   224.701,
	Mars:    686.980,
}

// Mean longitudes at the J2000 epoch (2000-01-01 12:00 UTC), degrees.
var epochLongitudes = map[Planet]float64{
	Sun:     280.46,
	Moon:    218.32,
	Mercury: 252.25,
	Venus:   181.98,
	Mars:    355.45,
}

var astroEpoch = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// aspectAngles maps each aspect type to its exact angle and harmony.
var aspectAngles = []struct {
	angle      float64
	aspectType AspectType
	harmonious bool
}{
	{0, Conjunction, true},
	{60, Sextile, true},
	{90, Square, false},
	{120, Trine, true},
	{180, Opposition, false},
}

// zodiacRanges is the fixed date-range table deriving a sign from birth
// month and day. Each entry is the sign beginning on (month, day).
var zodiacRanges = []struct {
	month time.Month
	day   int
	sign  ZodiacSign
}{
	{time.January, 20, Aquarius},
	{time.February, 19, Pisces},
	{time.March, 21, Aries},
	{time.April, 20, Taurus},
	{time.May, 21, Gemini},
	{time.June, 21, Cancer},
	{time.July, 23, Leo},
	{time.August, 23, Virgo},
	{time.September, 23, Libra},
	{time.October, 23, Scorpio},
	{time.November, 22, Sagittarius},
	{time.December, 22, Capricorn},
}

// SunSignFor returns the tropical zodiac sign for a birth month and day.
func SunSignFor(month time.Month, day int) ZodiacSign {
	// Walk the table backwards: the first boundary at or before the
	// date wins. Dates before January 20 wrap to Capricorn.
	for i := len(zodiacRanges) - 1; i >= 0; i-- {
		r := zodiacRanges[i]
		if month > r.month || (month == r.month && day >= r.day) {
			return r.sign
		}
	}
	return Capricorn
}

// SignElement returns the classical element of a zodiac sign.
func SignElement(sign ZodiacSign) Element {
	switch sign {
	case Aries, Leo, Sagittarius:
		return ElementFire
	case Taurus, Virgo, Capricorn:
		return ElementEarth
	case Gemini, Libra, Aquarius:
		return ElementAir
	default:
		return ElementWater
	}
}

// PlanetaryLongitude approximates a planet's ecliptic longitude on the
// given date using mean motion from the J2000 epoch.
func PlanetaryLongitude(planet Planet, date time.Time) float64 {
	days := date.UTC().Sub(astroEpoch).Hours() / 24
	lon := math.Mod(epochLongitudes[planet]+days*360/orbitalPeriods[planet], 360)
	if lon < 0 {
		lon += 360
	}
	return lon
}

// signOfLongitude maps an ecliptic longitude to the sign containing it.
func signOfLongitude(lon float64) ZodiacSign {
	signs := [12]ZodiacSign{
		Aries, Taurus, Gemini, Cancer, Leo, Virgo,
		Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
	}
	index := int(math.Mod(lon, 360) / 30)
	if index < 0 || index > 11 {
		index = 0
	}
	return signs[index]
}

// angularSeparation returns the smallest angle between two longitudes,
// in [0,180].
func angularSeparation(a, b float64) float64 {
	diff := math.Abs(math.Mod(a-b+360, 360))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// findAspects computes all pairwise aspects between the given planetary
// longitudes, using the configured orb tolerance around each exact
// aspect angle.
func findAspects(longitudes map[Planet]float64, orb float64) []Aspect {
	planets := []Planet{Sun, Moon, Mercury, Venus, Mars}
	var aspects []Aspect

	for i := 0; i < len(planets); i++ {
		for j := i + 1; j < len(planets); j++ {
			sep := angularSeparation(longitudes[planets[i]], longitudes[planets[j]])
			for _, a := range aspectAngles {
				if math.Abs(sep-a.angle) <= orb {
					aspects = append(aspects, Aspect{
						First:      planets[i],
						Second:     planets[j],
						Type:       a.aspectType,
						Separation: sep,
						Harmonious: a.harmonious,
					})
					break
				}
			}
		}
	}

	return aspects
}

// businessBaseline is the starting point for each business sub-score
// before aspect and planet-sign modifiers are applied.
const businessBaseline = 50

// computeBusinessImpact derives the four business sub-scores from the
// day's aspects and planet placements. Each starts at the 50-point
// baseline, gains or loses fixed amounts per aspect type, is nudged by
// the element hosting each relevant planet, and is clamped to [0,100].
func computeBusinessImpact(longitudes map[Planet]float64, aspects []Aspect) BusinessImpact {
	meetings, decisions, negotiations, launches := businessBaseline, businessBaseline, businessBaseline, businessBaseline

	for _, a := range aspects {
		switch a.Type {
		case Conjunction:
			decisions += 6
			launches += 6
		case Sextile:
			meetings += 5
			negotiations += 5
		case Trine:
			meetings += 7
			decisions += 7
			negotiations += 7
			launches += 7
		case Square:
			decisions -= 6
			launches -= 6
		case Opposition:
			meetings -= 5
			negotiations -= 5
		}
	}

	// Planet-sign modifiers: the element hosting each planet nudges the
	// activities it traditionally governs.
	switch SignElement(signOfLongitude(longitudes[Mercury])) {
	case ElementAir:
		meetings += 4
		negotiations += 3
	case ElementFire:
		meetings += 2
	case ElementWater:
		meetings -= 2
	}

	switch SignElement(signOfLongitude(longitudes[Venus])) {
	case ElementAir, ElementWater:
		negotiations += 4
	case ElementEarth:
		negotiations += 2
	}

	switch SignElement(signOfLongitude(longitudes[Mars])) {
	case ElementFire:
		launches += 6
		decisions += 2
	case ElementEarth:
		launches -= 2
	}

	switch SignElement(signOfLongitude(longitudes[Sun])) {
	case ElementFire:
		decisions += 3
	case ElementEarth:
		decisions += 5
	case ElementAir:
		meetings += 3
	case ElementWater:
		meetings -= 1
	}

	return BusinessImpact{
		Meetings:     domain.ClampScore(meetings),
		Decisions:    domain.ClampScore(decisions),
		Negotiations: domain.ClampScore(negotiations),
		Launches:     domain.ClampScore(launches),
	}
}

// scoreAstrology computes the astrology subsystem result: the user's
// sun sign, approximate transiting longitudes for the target date,
// pairwise aspects within the orb, and the business-impact sub-scores.
// The subsystem score is the rounded mean of the four business scores.
func scoreAstrology(birthDate, targetDate time.Time, params *Params) AstrologyResult {
	b := birthDate.UTC()
	sunSign := SunSignFor(b.Month(), b.Day())

	longitudes := make(map[Planet]float64, len(orbitalPeriods))
	for planet := range orbitalPeriods {
		longitudes[planet] = PlanetaryLongitude(planet, targetDate)
	}

	aspects := findAspects(longitudes, params.AspectOrb)
	business := computeBusinessImpact(longitudes, aspects)

	score := int(math.Round(float64(
		business.Meetings+business.Decisions+business.Negotiations+business.Launches) / 4))

	harmonious, challenging := 0, 0
	for _, a := range aspects {
		if a.Harmonious {
			harmonious++
		} else {
			challenging++
		}
	}

	facts := []domain.Fact{
		{
			Subsystem: "astrology",
			Statement: fmt.Sprintf("The day holds %d harmonious and %d challenging aspects for %s.",
				harmonious, challenging, sunSign),
		},
	}

	return AstrologyResult{
		SunSign:    sunSign,
		Longitudes: longitudes,
		Aspects:    aspects,
		Business:   business,
		Score:      score,
		Facts:      facts,
	}
}
