package output

import (
	"encoding/json"
	"io"

	"github.com/muin-company/oops/internal/detect"
)

// Usage is the token accounting reported by the completion service.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Result is the --json form of a completed run. Solution is the raw model
// text, without terminal styling.
type Result struct {
	Context   detect.ErrorContext `json:"context"`
	Solution  string              `json:"solution"`
	Provider  string              `json:"provider"`
	Model     string              `json:"model"`
	Usage     Usage               `json:"usage"`
	ElapsedMS int64               `json:"elapsed_ms"`
	Truncated bool                `json:"input_truncated,omitempty"`
}

// DetectResult is the --json form of "oops detect".
type DetectResult struct {
	Context detect.ErrorContext `json:"context"`
	Scores  []detect.Score      `json:"scores,omitempty"`
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
