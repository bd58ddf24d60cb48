package narrative

import (
	"context"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/insight"
)

// Generator defines the interface for producing a prose narrative from a
// computed reading. Implementations must treat the reading as read-only:
// narration rephrases the result but never alters scores or facts.
type Generator interface {
	// Narrate produces a short prose narrative for the reading.
	Narrate(ctx context.Context, reading *domain.DailyEnergyReading, ins insight.Insight) (string, error)
}
