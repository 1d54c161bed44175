package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type geminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func newGeminiClient(cfg Config) (*geminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		timeout := cfg.Timeout
		cc.HTTPOptions.Timeout = &timeout
	}

	// NewClient only validates the config; no request is made here.
	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiClient{
		client: client,
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

func (c *geminiClient) Model() string {
	return c.model
}

func (c *geminiClient) Complete(ctx context.Context, req Request) (*Response, error) {
	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.User), gc)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}

	var in, out int64
	if resp.UsageMetadata != nil {
		in = int64(resp.UsageMetadata.PromptTokenCount)
		out = int64(resp.UsageMetadata.CandidatesTokenCount)
	}

	c.logger.Debug("completion finished",
		zap.String("provider", ProviderGemini),
		zap.String("model", resp.ModelVersion),
		zap.Duration("duration", time.Since(start)),
		zap.Int64("input_tokens", in),
		zap.Int64("output_tokens", out))

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	model := resp.ModelVersion
	if model == "" {
		model = c.model
	}
	return &Response{
		Text:         text,
		Model:        model,
		InputTokens:  in,
		OutputTokens: out,
	}, nil
}
