package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

type anthropicClient struct {
	api    anthropic.Client
	model  string
	logger *zap.Logger
}

func newAnthropicClient(cfg Config) *anthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &anthropicClient{
		api:    anthropic.NewClient(opts...),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

func (c *anthropicClient) Model() string {
	return c.model
}

func (c *anthropicClient) Complete(ctx context.Context, req Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
		Temperature: anthropic.Float(req.Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	start := time.Now()
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return nil, formatAnthropicError(err)
	}

	c.logger.Debug("completion finished",
		zap.String("provider", ProviderAnthropic),
		zap.String("model", string(msg.Model)),
		zap.Duration("duration", time.Since(start)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
		zap.String("stop_reason", string(msg.StopReason)))

	// Index-based iteration avoids copying large content blocks.
	var sb strings.Builder
	for i := range msg.Content {
		if text, ok := msg.Content[i].AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil, ErrEmptyResponse
	}

	model := string(msg.Model)
	if model == "" {
		model = c.model
	}
	return &Response{
		Text:         sb.String(),
		Model:        model,
		InputTokens:  msg.Usage.InputTokens,
		OutputTokens: msg.Usage.OutputTokens,
	}, nil
}

// formatAnthropicError maps API status codes to user-facing messages.
func formatAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return statusError("anthropic", "ANTHROPIC_API_KEY", apiErr.StatusCode, err)
	}
	return fmt.Errorf("API request failed: %w", err)
}

// statusError renders an HTTP failure from a completion service.
func statusError(service, keyEnv string, status int, err error) error {
	switch status {
	case 401:
		return fmt.Errorf("invalid API key: check your %s or ~/.oops/config.yaml", keyEnv)
	case 403:
		return fmt.Errorf("API key lacks permission: %w", err)
	case 404:
		return fmt.Errorf("model not found (status 404): %w", err)
	case 429:
		return fmt.Errorf("rate limited: too many requests, try again later")
	case 500, 502, 503:
		return fmt.Errorf("%s API unavailable (status %d): try again later", service, status)
	case 529:
		return fmt.Errorf("%s API overloaded: try again later", service)
	default:
		return fmt.Errorf("API error (status %d): %w", status, err)
	}
}
