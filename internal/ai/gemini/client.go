package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/spigell/autohire/internal/ai"
	"github.com/spigell/autohire/internal/logger"
	"github.com/spigell/autohire/internal/utils"
)

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200
)

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client and sends JSON-mode prompts to Gemini models.
type Generator struct {
	models    contentModels
	limiter   *rate.Limiter
	logger    *zap.Logger
	maxLogLen int
}

// Option customises a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for request and response traces.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithRequestsPerMinute throttles outbound calls. Zero disables throttling.
func WithRequestsPerMinute(rpm int) Option {
	return func(g *Generator) {
		if rpm > 0 {
			g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
		}
	}
}

// WithMaxLogLength bounds prompt and response previews in debug logs.
func WithMaxLogLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxLogLen = n
		}
	}
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey string, opts ...Option) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, opts...), nil
}

func newGenerator(models contentModels, opts ...Option) *Generator {
	g := &Generator{models: models, maxLogLen: defaultMaxLogLength}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	return g
}

// Provider returns the backend name used in log fields.
func (g *Generator) Provider() string {
	return providerName
}

// Generate sends prompt to model and returns the concatenated text of the response.
// Errors are returned as *ai.ServiceError.
func (g *Generator) Generate(ctx context.Context, model, prompt string, shape ai.Shape) (string, error) {
	if g == nil || g.models == nil {
		return "", &ai.ServiceError{Kind: ai.KindOther, Model: model, Err: errors.New("gemini generator is not initialized")}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ai.ServiceError{Kind: ai.KindOther, Model: model, Err: errors.New("prompt must not be empty")}
	}

	log := logger.WithAI(g.logger, providerName, model)

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", &ai.ServiceError{Kind: ai.KindOther, Model: model, Err: fmt.Errorf("wait for rate limiter: %w", err)}
		}
	}

	log.Debug("gemini generate content request",
		zap.Stringer("shape", shape),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	resp, err := g.models.GenerateContent(ctx, model, genai.Text(prompt), configFor(shape))
	if err != nil {
		return "", &ai.ServiceError{Kind: kindOf(err), Model: model, Err: fmt.Errorf("generate content: %w", err)}
	}

	output := responseText(resp)
	if output == "" {
		return "", &ai.ServiceError{Kind: ai.KindOther, Model: model, Err: errors.New("gemini api returned empty response")}
	}

	log.Debug("gemini generate content response",
		zap.Stringer("shape", shape),
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
