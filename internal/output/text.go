// Package output writes results to stdout, either as terminal text or as
// JSON for scripts.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/muin-company/oops/internal/detect"
	"github.com/muin-company/oops/internal/tui"
	"github.com/muin-company/oops/internal/util"
)

// WriteText prints a rendered solution as is, terminating it with a newline
// when it lacks one. Verbose mode appends the elapsed time of the completion
// request.
func WriteText(w io.Writer, rendered string, elapsed time.Duration, verbose bool) error {
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	if _, err := io.WriteString(w, rendered); err != nil {
		return err
	}
	if verbose {
		if _, err := fmt.Fprintf(w, "\n%s\n", tui.Elapsed(util.FormatElapsed(elapsed))); err != nil {
			return err
		}
	}
	return nil
}

const keyWidth = len("stack trace")

// WriteContext prints a classification as aligned key/value lines. Non-empty
// scores are listed below it, strongest first.
func WriteContext(w io.Writer, ctx detect.ErrorContext, scores []detect.Score) error {
	errorType := ctx.ErrorType
	if errorType == "" {
		errorType = "none"
	}
	rows := []struct{ key, value string }{
		{"language", ctx.Language.String()},
		{"severity", string(ctx.Severity)},
		{"error type", errorType},
		{"stack trace", yesNo(ctx.HasStackTrace)},
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", keyWidth-len(r.key))
		if _, err := fmt.Fprintf(w, "%s%s %s\n", tui.SecondaryStyle.Render(r.key), pad, r.value); err != nil {
			return err
		}
	}

	ranked := rankScores(scores)
	if len(ranked) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", tui.MutedStyle.Render("scores")); err != nil {
		return err
	}
	for _, s := range ranked {
		if _, err := fmt.Fprintf(w, "  %s %-10s %d\n", tui.Bullet(), s.Language, s.Matches); err != nil {
			return err
		}
	}
	return nil
}

// rankScores drops zero scores and orders the rest by match count. Equal
// counts keep detection order.
func rankScores(scores []detect.Score) []detect.Score {
	ranked := make([]detect.Score, 0, len(scores))
	for _, s := range scores {
		if s.Matches > 0 {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Matches > ranked[j].Matches
	})
	return ranked
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
