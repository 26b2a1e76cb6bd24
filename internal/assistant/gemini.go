package assistant

import (
	"context"
	"fmt"

	"fjacquet/smart-finance/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash-latest"

// GeminiOptions tune the generation request.
type GeminiOptions struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultGeminiOptions returns the model settings used by the hosted path.
func DefaultGeminiOptions() GeminiOptions {
	return GeminiOptions{
		Model:           DefaultModel,
		Temperature:     0.7,
		MaxOutputTokens: 200,
	}
}

// GeminiGenerator is a TextGenerator backed by the Google Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	logger logging.Logger
}

// NewGeminiGenerator opens a Gemini client with the given API key.
// Call Close when done.
func NewGeminiGenerator(ctx context.Context, apiKey string, opts GeminiOptions, logger logging.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is empty")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	model.SetTemperature(opts.Temperature)
	if opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxOutputTokens)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		name:   opts.Model,
		logger: logging.OrDefault(logger),
	}, nil
}

// Generate sends the prompt and returns the text of the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyAnswer
	}

	g.logger.Debug("Gemini answered",
		logging.Field{Key: logging.FieldModel, Value: g.name})
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
