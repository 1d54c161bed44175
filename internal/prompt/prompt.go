// Package prompt builds the two strings sent to the completion service:
// a fixed system instruction and a per-call user message.
package prompt

import (
	"fmt"
	"strings"

	"github.com/muin-company/oops/internal/detect"
)

// SystemPrompt is the format contract given to the model.
const SystemPrompt = `You are a debugging assistant. Analyze error messages and provide actionable solutions.

Rules:
- Be concise and direct
- Provide exact commands or code fixes
- No fluff or explanations unless necessary
- Format as: Problem → Solution → Command/Code
- If multiple solutions exist, list the most likely first`

const minFenceLen = 3

// BuildUserPrompt embeds the raw error text, and whatever the classifier
// found, into the user message.
func BuildUserPrompt(errorText string, ctx detect.ErrorContext) string {
	var b strings.Builder

	if ctx.Language != detect.LanguageUnknown {
		fmt.Fprintf(&b, "Language/Framework: %s\n", ctx.Language)
	}
	if ctx.ErrorType != "" {
		fmt.Fprintf(&b, "Error type: %s\n", ctx.ErrorType)
	}
	if ctx.HasStackTrace {
		b.WriteString("Includes a stack trace.\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	text := strings.TrimRight(strings.ReplaceAll(errorText, "\r", ""), "\n")
	fence := strings.Repeat("`", fenceLen(text))

	b.WriteString("Error output:\n")
	b.WriteString(fence)
	b.WriteString("\n")
	b.WriteString(text)
	b.WriteString("\n")
	b.WriteString(fence)
	b.WriteString("\n\nProvide the fix.")

	return b.String()
}

// fenceLen returns a backtick fence longer than any backtick run in text,
// so the error output cannot close its own block.
func fenceLen(text string) int {
	longest, run := 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return max(minFenceLen, longest+1)
}
