package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muin-company/oops/internal/agent"
	"github.com/muin-company/oops/internal/config"
	"github.com/muin-company/oops/internal/input"
	"github.com/muin-company/oops/internal/llm"
	"github.com/muin-company/oops/internal/logging"
	"github.com/muin-company/oops/internal/signal"
	"github.com/muin-company/oops/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds flag values and per-run state shared by all commands.
type app struct {
	verbose   bool
	noColor   bool
	jsonOut   bool
	overrides config.Overrides

	logger  *zap.Logger
	present agent.Presentation

	newCompleter func(llm.Config) (llm.Completer, error)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(llm.New)
}

func newRootCmd(newCompleter func(llm.Config) (llm.Completer, error)) *cobra.Command {
	a := &app{
		logger:       zap.NewNop(),
		newCompleter: newCompleter,
	}

	root := &cobra.Command{
		Use:   "oops",
		Short: "Pipe in an error, get back the fix",
		Long: `oops reads a failing command's output from stdin, works out which
ecosystem it came from, and asks a language model for the most likely fix.

  npm run build 2>&1 | oops
  python app.py 2>&1 | oops --json

Providers: anthropic (default), openai, gemini. Credentials come from
ANTHROPIC_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY, or ~/.oops/config.yaml.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runOops,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "show classification details, timing and debug logs")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&a.jsonOut, "json", false, "print the result as JSON")
	flags.StringVar(&a.overrides.Provider, "provider", "", "completion provider: anthropic, openai or gemini")
	flags.StringVar(&a.overrides.Model, "model", "", "model name (default depends on provider)")
	flags.IntVar(&a.overrides.MaxTokens, "max-tokens", 0, "maximum tokens in the response")

	root.AddCommand(newDetectCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd())

	root.SetVersionTemplate("oops {{.Version}}\n")
	return root
}

// setup builds the logger and decides how output is presented.
func (a *app) setup(cmd *cobra.Command) error {
	logger, err := logging.New(a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	a.present = agent.Decide(a.noColor, agent.Terminal{
		Stdout: isTerminal(cmd.OutOrStdout()),
		Stderr: isTerminal(cmd.ErrOrStderr()),
	}, os.Getenv)
	if !a.present.Color {
		tui.DisableColor()
	}

	if info := agent.Detect(); info.IsAgent {
		a.logger.Debug("agent environment detected",
			zap.String("agent", info.Name),
			zap.String("env", info.EnvVar))
	}
	if a.verbose && !a.jsonOut {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", tui.Header(Version, cmd.Name()))
	}
	return nil
}

// readInput reads the piped text, refusing an interactive terminal.
func readInput(cmd *cobra.Command) (*input.Result, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && input.IsInteractive(f) {
		return nil, input.ErrInteractive
	}
	return input.Read(in, input.MaxInputBytes)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && input.IsInteractive(f)
}

// Execute runs the root command with signal handling and prints any
// failure to stderr.
func Execute() error {
	ctx, stop := signal.SetupSignalHandler(context.Background())
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errCancelled) {
		printError(root.ErrOrStderr(), err)
	}
	return err
}
