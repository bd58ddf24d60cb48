package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/auradaily/aura-api/internal/config"
	"github.com/auradaily/aura-api/internal/domain"
	"github.com/auradaily/aura-api/internal/domain/insight"
	"github.com/auradaily/aura-api/internal/narrative"
)

const (
	defaultModelName = "gemini-2.0-flash"
	maxRetries       = 3
	baseRetryDelay   = 2 * time.Second
)

// promptTemplate frames the reading for the model. The model rephrases;
// it must not introduce new scores or facts.
const promptTemplate = `You are writing a short daily energy narrative for a wellness app.
Rewrite the following reading as one warm, encouraging paragraph of at most 80 words.
Do not change any numbers and do not add new claims.

Score: {{.Score}} out of 100 ({{.EnergyType}} energy)
Summary: {{.Summary}}
Influences:
{{- range .Explanations}}
- {{.}}
{{- end}}
Guidance: {{.Recommendation}}
`

type promptData struct {
	Score          int
	EnergyType     string
	Summary        string
	Explanations   []string
	Recommendation string
}

// Narrator implements the narrative.Generator interface using Google's
// Gemini API.
type Narrator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
	tmpl   *template.Template
}

// NewNarrator creates a new Gemini-backed narrator.
func NewNarrator(ctx context.Context, logger *slog.Logger, cfg config.NarrativeConfig) (*Narrator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", narrative.ErrInvalidConfig)
	}

	model := cfg.ModelName
	if model == "" {
		model = defaultModelName
	}

	tmpl, err := template.New("narrative").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", narrative.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", narrative.ErrInvalidConfig, err)
	}

	return &Narrator{
		logger: logger.With("component", "gemini_narrator"),
		client: client,
		model:  model,
		tmpl:   tmpl,
	}, nil
}

// Ensure Narrator implements narrative.Generator
var _ narrative.Generator = (*Narrator)(nil)

// Narrate implements narrative.Generator.Narrate
func (n *Narrator) Narrate(ctx context.Context, reading *domain.DailyEnergyReading, ins insight.Insight) (string, error) {
	if reading == nil {
		return "", fmt.Errorf("%w: reading cannot be nil", narrative.ErrGenerationFailed)
	}

	prompt, err := n.buildPrompt(reading, ins)
	if err != nil {
		return "", err
	}

	text, err := n.callWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func (n *Narrator) buildPrompt(reading *domain.DailyEnergyReading, ins insight.Insight) (string, error) {
	data := promptData{
		Score:      reading.AdjustedScore,
		EnergyType: string(reading.EnergyType),
		Summary:    ins.Summary,
	}
	data.Explanations = append(data.Explanations, ins.SpiritualExplanations...)
	data.Explanations = append(data.Explanations, ins.PersonalExplanations...)
	if len(ins.Recommendations) > 0 {
		data.Recommendation = ins.Recommendations[0]
	}

	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: failed to execute prompt template: %v", narrative.ErrGenerationFailed, err)
	}
	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter
// for transient errors. Permanent errors (blocked content, empty
// responses) are returned immediately.
func (n *Narrator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		n.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		text, err := n.callOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}

		if errors.Is(err, narrative.ErrContentBlocked) || errors.Is(err, narrative.ErrInvalidResponse) {
			n.logger.WarnContext(ctx, "permanent error from Gemini, not retrying", "error", err)
			return "", err
		}

		if attempt >= maxRetries {
			n.logger.WarnContext(ctx, "maximum retry attempts reached", "max_retries", maxRetries)
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				narrative.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoff := float64(baseRetryDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		n.logger.InfoContext(ctx, "retrying Gemini call after delay",
			"attempt", attempt+1,
			"delay", delay,
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", narrative.ErrTransientFailure, ctx.Err())
		}
	}
}

func (n *Narrator) callOnce(ctx context.Context, prompt string) (string, error) {
	resp, err := n.client.Models.GenerateContent(ctx, n.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", narrative.ErrTransientFailure, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", narrative.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filters", narrative.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", narrative.ErrInvalidResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty text in response", narrative.ErrInvalidResponse)
	}

	return text, nil
}
