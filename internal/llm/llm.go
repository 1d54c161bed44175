// Package llm sends a single prompt to a completion service and returns the
// text of the reply.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Provider constants for completion service selection.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
)

// ErrEmptyResponse indicates the service answered without any text.
var ErrEmptyResponse = errors.New("empty response from completion service")

// Completer produces one completion per call. Implementations never retry.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Model() string
}

// Request is a single system + user prompt exchange.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Response is the completion text and its token usage.
type Response struct {
	Text         string
	Model        string
	InputTokens  int64
	OutputTokens int64
}

// Config holds client configuration.
type Config struct {
	Provider string        // "anthropic", "openai" or "gemini"; empty means anthropic
	APIKey   string        // Required
	BaseURL  string        // Optional: custom API endpoint
	Model    string        // Required
	Timeout  time.Duration // Per request; 0 means none
	Logger   *zap.Logger   // Optional
}

// New creates the Completer for cfg.Provider.
func New(cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	switch cfg.Provider {
	case ProviderAnthropic, "":
		return newAnthropicClient(cfg), nil
	case ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderGemini:
		return newGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
