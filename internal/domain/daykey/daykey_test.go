package daykey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare day key passes through",
			input: "2024-03-10",
			want:  "2024-03-10",
		},
		{
			name:  "UTC timestamp truncates to its day",
			input: "1990-05-15T04:23:00.000Z",
			want:  "1990-05-15",
		},
		{
			name:  "timestamp without fractional seconds",
			input: "2024-03-10T12:00:00Z",
			want:  "2024-03-10",
		},
		{
			name:  "offset timestamp normalizes on the UTC calendar",
			input: "2024-03-10T23:30:00-05:00",
			want:  "2024-03-11",
		},
		{
			name:    "plain text is rejected",
			input:   "not a date",
			wantErr: true,
		},
		{
			name:    "empty string is rejected",
			input:   "",
			wantErr: true,
		},
		{
			name:    "partial date is rejected",
			input:   "2024-03",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnparsable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := Normalize("2024-07-04T18:45:12Z")
	require.NoError(t, err)

	second, err := Normalize(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_DayKeyIsMidnightUTC(t *testing.T) {
	t.Parallel()

	got, err := Parse("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestMidnight(t *testing.T) {
	t.Parallel()

	instant := time.Date(2024, time.March, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), Midnight(instant))

	// Already at midnight stays fixed.
	assert.Equal(t, Midnight(instant), Midnight(Midnight(instant)))
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", day(2024, time.March, 10), day(2024, time.March, 10), 0},
		{"consecutive days", day(2024, time.March, 10), day(2024, time.March, 11), 1},
		{"reversed is negative", day(2024, time.March, 11), day(2024, time.March, 10), -1},
		{"across a leap day", day(2024, time.February, 28), day(2024, time.March, 1), 2},
		{
			"time of day is ignored",
			time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 11, 1, 0, 0, 0, time.UTC),
			1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}
