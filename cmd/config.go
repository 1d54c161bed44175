package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/muin-company/oops/internal/config"
	"github.com/muin-company/oops/internal/tui"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit oops configuration",
		Long: `Settings are resolved from flags, then environment variables, then
~/.oops/config.yaml, then defaults.

Keys:
  provider     anthropic, openai or gemini
  model        model name for the provider
  api_key      credential (prefer the provider's env var)
  base_url     custom API endpoint
  max_tokens   response length limit
  temperature  sampling temperature (0 to 2)
  timeout      per-request timeout, e.g. 30s (0 = none)`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display the resolved configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE:  a.runConfigShow,
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a value to the configuration file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := config.Set(path, args[0], args[1]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s saved to %s\n",
				tui.BrandStyle.Render("✓"), args[0], path)
			return err
		},
	})

	return configCmd
}

func (a *app) runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.overrides)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	apiKey := tui.WarningStyle.Render("not configured")
	if cfg.APIKey.Value != "" {
		apiKey = tui.PrimaryStyle.Render(config.MaskKey(cfg.APIKey.Value))
	}
	baseURL := tui.MutedStyle.Render("default")
	if cfg.BaseURL.Value != "" {
		baseURL = tui.PrimaryStyle.Render(cfg.BaseURL.Value)
	}
	timeout := tui.MutedStyle.Render("none")
	if cfg.Timeout.Value > 0 {
		timeout = tui.PrimaryStyle.Render(cfg.Timeout.Value.String())
	}

	_, _ = fmt.Fprintf(w, "%s\n", tui.SecondaryStyle.Render("Completion"))
	showRow(w, "Provider", tui.PrimaryStyle.Render(string(cfg.Provider.Value)), cfg.Provider.Source)
	showRow(w, "Model", tui.PrimaryStyle.Render(cfg.Model.Value), cfg.Model.Source)
	showRow(w, "API Key", apiKey, cfg.APIKey.Source)
	showRow(w, "Base URL", baseURL, cfg.BaseURL.Source)

	_, _ = fmt.Fprintf(w, "\n%s\n", tui.SecondaryStyle.Render("Request"))
	showRow(w, "Max tokens", tui.PrimaryStyle.Render(strconv.Itoa(cfg.MaxTokens.Value)), cfg.MaxTokens.Source)
	showRow(w, "Temperature", tui.PrimaryStyle.Render(strconv.FormatFloat(cfg.Temperature.Value, 'g', -1, 64)), cfg.Temperature.Source)
	showRow(w, "Timeout", timeout, cfg.Timeout.Source)

	_, err = fmt.Fprintf(w, "\n%s %s\n", tui.MutedStyle.Render("File"), cfg.Path)
	return err
}

// showRow prints one setting. Defaults carry no badge.
func showRow(w io.Writer, name, value string, source config.ValueSource) {
	badge := ""
	if source != config.SourceDefault {
		badge = " " + tui.Badge(source.String())
	}
	_, _ = fmt.Fprintf(w, "  %-12s %s%s\n", name, value, badge)
}
