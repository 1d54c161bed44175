package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muin-company/oops/internal/config"
	"github.com/muin-company/oops/internal/input"
	"github.com/muin-company/oops/internal/tui"
)

// errCancelled is returned when the user interrupts a request. The
// cancellation notice has already been printed.
var errCancelled = errors.New("cancelled")

// ServiceError is a failed completion request.
type ServiceError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const pipeExample = "npm run build 2>&1 | oops"

// printError renders err with a remediation hint where one is known.
func printError(w io.Writer, err error) {
	var svcErr *ServiceError
	switch {
	case errors.Is(err, input.ErrInteractive):
		_, _ = fmt.Fprintln(w, tui.ExitError("Nothing piped to oops"))
		_, _ = fmt.Fprintln(w, tui.Hint("Pipe a failing command into it: "+pipeExample))
	case errors.Is(err, input.ErrNoInput):
		_, _ = fmt.Fprintln(w, tui.ExitError("No input received"))
		_, _ = fmt.Fprintln(w, tui.Hint("Include stderr in the pipe: "+pipeExample))
	case errors.Is(err, config.ErrMissingAPIKey):
		_, _ = fmt.Fprintln(w, tui.ExitError(capitalize(err.Error())))
		_, _ = fmt.Fprintln(w, tui.Hint("Or save one: oops config set api_key <key>"))
	case errors.Is(err, config.ErrUnknownProvider):
		_, _ = fmt.Fprintln(w, tui.ExitError(capitalize(err.Error())))
		_, _ = fmt.Fprintln(w, tui.Hint("Check --provider, OOPS_PROVIDER or "+configPathHint()))
	case errors.As(err, &svcErr):
		_, _ = fmt.Fprintln(w, tui.ExitError(capitalize(svcErr.Error())))
		_, _ = fmt.Fprintln(w, tui.Hint("Nothing was retried; run the command again"))
	default:
		_, _ = fmt.Fprintln(w, tui.ExitError(capitalize(err.Error())))
	}
}

func configPathHint() string {
	if path, err := config.Path(); err == nil {
		return path
	}
	return "~/.oops/config.yaml"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
