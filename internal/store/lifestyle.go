package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/auradaily/aura-api/internal/domain"
)

// DayRange bounds a query to an inclusive range of calendar-day keys.
// Zero values leave the corresponding bound open.
type DayRange struct {
	From string // inclusive, YYYY-MM-DD
	To   string // inclusive, YYYY-MM-DD
}

// LifestyleStore defines the interface for lifestyle log persistence.
// Entries are append-only from the pipeline's point of view: the store
// applies category-specific write semantics but never exposes mutation.
type LifestyleStore interface {
	// SaveEntry persists a log entry. For categories that allow
	// multiple entries per day (exercise, nutrition, social,
	// meditation) the entry is appended; for the rest (sleep, weather,
	// biometric) it replaces any existing entry for the same user and
	// day. Returns validation errors from the domain LogEntry if data
	// is invalid.
	SaveEntry(ctx context.Context, entry *domain.LogEntry) error

	// GetEntries retrieves a user's entries for one category, oldest
	// first, optionally bounded to a day range. A range with zero
	// values returns the full history. An empty result is not an
	// error.
	GetEntries(ctx context.Context, userID uuid.UUID, category domain.LogCategory, dayRange DayRange) ([]domain.LogEntry, error)

	// GetEntriesForDay retrieves all of a user's entries across every
	// category for a single calendar day.
	GetEntriesForDay(ctx context.Context, userID uuid.UUID, day string) ([]domain.LogEntry, error)

	// WithTx returns a new LifestyleStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LifestyleStore
}
