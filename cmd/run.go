package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/muin-company/oops/internal/config"
	"github.com/muin-company/oops/internal/detect"
	"github.com/muin-company/oops/internal/format"
	"github.com/muin-company/oops/internal/input"
	"github.com/muin-company/oops/internal/llm"
	"github.com/muin-company/oops/internal/output"
	"github.com/muin-company/oops/internal/prompt"
	"github.com/muin-company/oops/internal/sentry"
	"github.com/muin-company/oops/internal/signal"
	"github.com/muin-company/oops/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runOops is the main pipeline: read, classify, ask, format, print.
// Credentials are checked before any classification work.
func (a *app) runOops(cmd *cobra.Command, _ []string) error {
	in, err := readInput(cmd)
	if err != nil {
		return err
	}
	sentry.AddBreadcrumb("input", fmt.Sprintf("read %d bytes", len(in.Text)))
	if in.Truncated {
		a.logger.Warn("input truncated, keeping the last part",
			zap.Int("limit_bytes", input.MaxInputBytes))
	}

	cfg, err := config.Load(a.overrides)
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	errCtx := detect.Classify(in.Text)
	a.logger.Debug("classified input",
		zap.Stringer("language", errCtx.Language),
		zap.String("severity", string(errCtx.Severity)),
		zap.String("error_type", errCtx.ErrorType),
		zap.Bool("stack_trace", errCtx.HasStackTrace))

	provider := string(cfg.Provider.Value)
	completer, err := a.newCompleter(llm.Config{
		Provider: provider,
		APIKey:   cfg.APIKey.Value,
		BaseURL:  cfg.BaseURL.Value,
		Model:    cfg.Model.Value,
		Timeout:  cfg.Timeout.Value,
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}
	a.logger.Debug("sending request",
		zap.String("provider", provider),
		zap.String("model", completer.Model()),
		zap.Stringer("model_source", cfg.Model.Source))
	sentry.AddBreadcrumb("completion", provider+"/"+completer.Model())

	req := llm.Request{
		System:      prompt.SystemPrompt,
		User:        prompt.BuildUserPrompt(in.Text, errCtx),
		MaxTokens:   cfg.MaxTokens.Value,
		Temperature: cfg.Temperature.Value,
	}
	complete := func(ctx context.Context) (*llm.Response, error) {
		return completer.Complete(ctx, req)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	var resp *llm.Response
	if a.present.Animate && !a.jsonOut {
		resp, err = tui.RunWithIndicator(ctx, cmd.ErrOrStderr(), "Asking "+completer.Model(), complete)
	} else {
		resp, err = complete(ctx)
	}
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			signal.PrintCancellationMessage(cmd.ErrOrStderr())
			return errCancelled
		}
		return &ServiceError{Provider: provider, Model: completer.Model(), Err: err}
	}

	if a.jsonOut {
		return output.WriteJSON(cmd.OutOrStdout(), output.Result{
			Context:  errCtx,
			Solution: resp.Text,
			Provider: provider,
			Model:    resp.Model,
			Usage: output.Usage{
				InputTokens:  resp.InputTokens,
				OutputTokens: resp.OutputTokens,
			},
			ElapsedMS: elapsed.Milliseconds(),
			Truncated: in.Truncated,
		})
	}

	styles := format.PlainStyles()
	if a.present.Color {
		styles = format.DefaultStyles()
	}
	rendered := format.New(styles).Format(resp.Text, errCtx)
	return output.WriteText(cmd.OutOrStdout(), rendered, elapsed, a.verbose)
}
