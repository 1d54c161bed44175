package cmd

import (
	"github.com/muin-company/oops/internal/detect"
	"github.com/muin-company/oops/internal/output"
	"github.com/spf13/cobra"
)

func newDetectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Classify piped error text without calling a model",
		Long: `Print the language, severity, error type and stack trace flag that oops
would send along with the error. No credentials or network are needed.

With --verbose, the per-language pattern scores are listed as well.`,
		Args: cobra.NoArgs,
		RunE: a.runDetect,
	}
}

func (a *app) runDetect(cmd *cobra.Command, _ []string) error {
	in, err := readInput(cmd)
	if err != nil {
		return err
	}

	errCtx := detect.Classify(in.Text)
	var scores []detect.Score
	if a.verbose {
		scores = detect.Scores(in.Text)
	}

	if a.jsonOut {
		return output.WriteJSON(cmd.OutOrStdout(), output.DetectResult{
			Context: errCtx,
			Scores:  scores,
		})
	}
	return output.WriteContext(cmd.OutOrStdout(), errCtx, scores)
}
