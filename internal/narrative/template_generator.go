package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/insight"
)

// TemplateGenerator is the deterministic fallback narrator. It stitches
// the reading's own statements into a short paragraph, so the output is
// reproducible for a given reading.
type TemplateGenerator struct{}

// NewTemplateGenerator creates a new TemplateGenerator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Ensure TemplateGenerator implements Generator
var _ Generator = (*TemplateGenerator)(nil)

// Narrate implements Generator.Narrate
func (g *TemplateGenerator) Narrate(_ context.Context, reading *domain.DailyEnergyReading, ins insight.Insight) (string, error) {
	if reading == nil {
		return "", fmt.Errorf("%w: reading cannot be nil", ErrGenerationFailed)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s energy today, %d out of 100. %s",
		capitalize(string(reading.EnergyType)), reading.AdjustedScore, reading.Description)

	if len(ins.SpiritualExplanations) > 0 {
		b.WriteString(" ")
		b.WriteString(ins.SpiritualExplanations[0])
	}
	if len(ins.PersonalExplanations) > 0 {
		b.WriteString(" ")
		b.WriteString(ins.PersonalExplanations[0])
	}
	if len(ins.Recommendations) > 0 {
		b.WriteString(" ")
		b.WriteString(ins.Recommendations[0])
	}

	return b.String(), nil
}

// capitalize upper-cases the first byte of an ASCII word. Energy type
// names are ASCII by construction.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
