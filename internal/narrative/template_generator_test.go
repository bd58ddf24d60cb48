package narrative

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/insight"
)

func TestTemplateGenerator_Narrate(t *testing.T) {
	t.Parallel()

	generator := NewTemplateGenerator()

	reading := &domain.DailyEnergyReading{
		UserID:        uuid.New(),
		Day:           "2024-03-10",
		BaseScore:     70,
		AdjustedScore: 78,
		EnergyType:    domain.EnergyTypeDynamic,
		Description:   "A day of forward motion.",
	}
	ins := insight.Insight{
		SpiritualExplanations: []string{"The waxing moon builds momentum."},
		PersonalExplanations:  []string{"Slept 8.0 hours."},
		Recommendations:       []string{"Make steady progress on ongoing projects."},
	}

	t.Run("stitches the reading into a paragraph", func(t *testing.T) {
		t.Parallel()

		text, err := generator.Narrate(context.Background(), reading, ins)
		require.NoError(t, err)
		assert.Equal(t,
			"Dynamic energy today, 78 out of 100. A day of forward motion."+
				" The waxing moon builds momentum. Slept 8.0 hours."+
				" Make steady progress on ongoing projects.",
			text)
	})

	t.Run("deterministic for the same reading", func(t *testing.T) {
		t.Parallel()

		first, err := generator.Narrate(context.Background(), reading, ins)
		require.NoError(t, err)
		second, err := generator.Narrate(context.Background(), reading, ins)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty insight still narrates", func(t *testing.T) {
		t.Parallel()

		text, err := generator.Narrate(context.Background(), reading, insight.Insight{})
		require.NoError(t, err)
		assert.Equal(t, "Dynamic energy today, 78 out of 100. A day of forward motion.", text)
	})

	t.Run("nil reading", func(t *testing.T) {
		t.Parallel()

		text, err := generator.Narrate(context.Background(), nil, ins)
		assert.Empty(t, text)
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}
