package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LogCategory identifies the kind of lifestyle factor a log entry records.
type LogCategory string

// Supported lifestyle log categories.
const (
	CategorySleep      LogCategory = "sleep"
	CategoryExercise   LogCategory = "exercise"
	CategoryMeditation LogCategory = "meditation"
	CategoryNutrition  LogCategory = "nutrition"
	CategorySocial     LogCategory = "social"
	CategoryWeather    LogCategory = "weather"
	CategoryBiometric  LogCategory = "biometric"
)

// AllLogCategories lists every supported category in a stable order.
var AllLogCategories = []LogCategory{
	CategorySleep,
	CategoryExercise,
	CategoryMeditation,
	CategoryNutrition,
	CategorySocial,
	CategoryWeather,
	CategoryBiometric,
}

// IsValid reports whether the category is one of the supported categories.
func (c LogCategory) IsValid() bool {
	switch c {
	case CategorySleep, CategoryExercise, CategoryMeditation, CategoryNutrition,
		CategorySocial, CategoryWeather, CategoryBiometric:
		return true
	default:
		return false
	}
}

// AllowsMultiplePerDay reports whether more than one entry may exist for a
// single calendar day. Sleep, weather, and biometric entries are upserted
// by date; the remaining categories append (multiple workouts, meals, or
// interactions per day).
func (c LogCategory) AllowsMultiplePerDay() bool {
	switch c {
	case CategoryExercise, CategoryNutrition, CategorySocial, CategoryMeditation:
		return true
	default:
		return false
	}
}

// SleepQuality is the self-reported quality of a night's sleep.
type SleepQuality string

// Sleep quality ratings.
const (
	SleepQualityExcellent SleepQuality = "excellent"
	SleepQualityGood      SleepQuality = "good"
	SleepQualityFair      SleepQuality = "fair"
	SleepQualityPoor      SleepQuality = "poor"
)

// ExerciseIntensity is the self-reported intensity of a workout session.
type ExerciseIntensity string

// Exercise intensity ratings.
const (
	IntensityLight    ExerciseIntensity = "light"
	IntensityModerate ExerciseIntensity = "moderate"
	IntensityIntense  ExerciseIntensity = "intense"
)

// SocialTone classifies a social interaction by its effect on the user.
type SocialTone string

// Social interaction tones.
const (
	SocialEnergizing SocialTone = "energizing"
	SocialNeutral    SocialTone = "neutral"
	SocialDraining   SocialTone = "draining"
)

// WeatherCondition is the dominant weather condition for a day.
type WeatherCondition string

// Weather conditions.
const (
	WeatherSunny  WeatherCondition = "sunny"
	WeatherCloudy WeatherCondition = "cloudy"
	WeatherRainy  WeatherCondition = "rainy"
	WeatherSnowy  WeatherCondition = "snowy"
	WeatherWindy  WeatherCondition = "windy"
)

// SleepLog records a night of sleep.
type SleepLog struct {
	Hours   float64      `json:"hours"`
	Quality SleepQuality `json:"quality"`
}

// ExerciseLog records a single workout session.
type ExerciseLog struct {
	Minutes   int               `json:"minutes"`
	Intensity ExerciseIntensity `json:"intensity"`
	Activity  string            `json:"activity,omitempty"`
}

// MeditationLog records a single meditation session.
type MeditationLog struct {
	Minutes int    `json:"minutes"`
	Style   string `json:"style,omitempty"`
}

// NutritionLog records a meal with a 1-10 quality rating.
type NutritionLog struct {
	Meal    string  `json:"meal,omitempty"`
	Quality float64 `json:"quality"`
}

// SocialLog records a single social interaction.
type SocialLog struct {
	Tone        SocialTone `json:"tone"`
	Description string     `json:"description,omitempty"`
}

// WeatherLog records the day's dominant weather condition.
type WeatherLog struct {
	Condition     WeatherCondition `json:"condition"`
	TemperatureC  float64          `json:"temperature_c,omitempty"`
	DaylightHours float64          `json:"daylight_hours,omitempty"`
}

// BiometricLog records a daily biometric snapshot.
type BiometricLog struct {
	RestingHeartRate int     `json:"resting_heart_rate,omitempty"`
	HeartRateVarMs   float64 `json:"heart_rate_var_ms,omitempty"`
	WeightKg         float64 `json:"weight_kg,omitempty"`
}

// Log entry validation errors.
var (
	ErrEmptyLogID        = errors.New("log entry ID cannot be empty")
	ErrEmptyLogUserID    = errors.New("log entry user ID cannot be empty")
	ErrEmptyLogDay       = errors.New("log entry day key cannot be empty")
	ErrLogPayloadMissing = errors.New("log entry payload does not match its category")
	ErrNegativeDuration  = errors.New("duration cannot be negative")
)

// LogEntry is a dated lifestyle record. Exactly one payload field is
// non-nil, and it must match Category. Entries are append-only: once
// written they are never mutated, only superseded (for upsert categories)
// or joined against by date key.
type LogEntry struct {
	ID       uuid.UUID   `json:"id"`
	UserID   uuid.UUID   `json:"user_id"`
	Category LogCategory `json:"category"`
	Day      string      `json:"day"` // calendar-day key, YYYY-MM-DD (UTC)

	Sleep      *SleepLog      `json:"sleep,omitempty"`
	Exercise   *ExerciseLog   `json:"exercise,omitempty"`
	Meditation *MeditationLog `json:"meditation,omitempty"`
	Nutrition  *NutritionLog  `json:"nutrition,omitempty"`
	Social     *SocialLog     `json:"social,omitempty"`
	Weather    *WeatherLog    `json:"weather,omitempty"`
	Biometric  *BiometricLog  `json:"biometric,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewLogEntry creates a LogEntry for the given user, category, and day key.
// The payload argument must be a pointer to the matching payload struct
// (e.g. *SleepLog for CategorySleep). Returns an error if validation fails.
func NewLogEntry(userID uuid.UUID, category LogCategory, day string, payload any) (*LogEntry, error) {
	entry := &LogEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  category,
		Day:       day,
		CreatedAt: time.Now().UTC(),
	}

	switch p := payload.(type) {
	case *SleepLog:
		entry.Sleep = p
	case *ExerciseLog:
		entry.Exercise = p
	case *MeditationLog:
		entry.Meditation = p
	case *NutritionLog:
		entry.Nutrition = p
	case *SocialLog:
		entry.Social = p
	case *WeatherLog:
		entry.Weather = p
	case *BiometricLog:
		entry.Biometric = p
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the LogEntry has valid data.
// Returns an error if any field fails validation.
func (e *LogEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyLogID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyLogUserID
	}

	if e.Day == "" {
		return ErrEmptyLogDay
	}

	if !e.Category.IsValid() {
		return ErrInvalidLogCategory
	}

	if err := e.validatePayload(); err != nil {
		return err
	}

	return nil
}

// validatePayload ensures exactly the payload matching Category is set
// and that its numeric fields are sane.
func (e *LogEntry) validatePayload() error {
	switch e.Category {
	case CategorySleep:
		if e.Sleep == nil {
			return ErrLogPayloadMissing
		}
		if e.Sleep.Hours < 0 {
			return ErrNegativeDuration
		}
	case CategoryExercise:
		if e.Exercise == nil {
			return ErrLogPayloadMissing
		}
		if e.Exercise.Minutes < 0 {
			return ErrNegativeDuration
		}
	case CategoryMeditation:
		if e.Meditation == nil {
			return ErrLogPayloadMissing
		}
		if e.Meditation.Minutes < 0 {
			return ErrNegativeDuration
		}
	case CategoryNutrition:
		if e.Nutrition == nil {
			return ErrLogPayloadMissing
		}
	case CategorySocial:
		if e.Social == nil {
			return ErrLogPayloadMissing
		}
	case CategoryWeather:
		if e.Weather == nil {
			return ErrLogPayloadMissing
		}
	case CategoryBiometric:
		if e.Biometric == nil {
			return ErrLogPayloadMissing
		}
	}
	return nil
}
