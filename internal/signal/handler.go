// Package signal cancels the in-flight completion on Ctrl+C.
package signal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/muin-company/oops/internal/tui"
)

// SetupSignalHandler returns a context that is cancelled on SIGINT or
// SIGTERM. The returned stop function releases the signal subscription and
// must be called once the context is no longer needed.
func SetupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// PrintCancellationMessage writes a muted notice that the request was
// abandoned.
func PrintCancellationMessage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n%s\n", tui.MutedStyle.Render("oops cancelled"))
}
