// Package daykey canonicalizes date representations to a single
// calendar-day key (YYYY-MM-DD) using UTC semantics. The key is the
// join key between independently logged lifestyle categories and
// between logs and computed scores, so parsing must never be affected
// by the caller's local timezone.
package daykey

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical calendar-day key format.
const Layout = "2006-01-02"

// ErrUnparsable is returned when a value is neither a calendar-day key
// nor a recognizable timestamp.
var ErrUnparsable = errors.New("value is not a date or timestamp")

// Normalize converts any supported date representation (a bare
// calendar-day string or a full timestamp) to its canonical day key.
// Timestamps are interpreted on the UTC calendar regardless of their
// offset: "1990-05-15T04:23:00.000Z" normalizes to "1990-05-15".
func Normalize(value string) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

// Parse interprets a day key or timestamp string as a UTC instant.
// For bare day keys the result is midnight UTC of that day, so Parse
// and Format are exact inverses for any date without a time component.
func Parse(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(Layout, value, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsable, value)
}

// Format returns the canonical day key for the given instant, evaluated
// on the UTC calendar.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Midnight returns midnight UTC of the instant's UTC calendar day.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b on
// the UTC calendar. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}
