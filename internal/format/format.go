// Package format re-renders free-form model responses for the terminal.
//
// The model is asked for "Problem → Solution → Command/Code" but nothing
// guarantees it complies, so the renderer recognizes a handful of shapes
// (fenced blocks, markdown headings, shell commands, labeled sections) and
// passes everything else through untouched.
package format

import (
	"regexp"
	"strings"

	"github.com/muin-company/oops/internal/detect"
)

const (
	fence      = "```"
	codeIndent = "  "
	promptMark = "  $ "
)

var (
	// Markdown heading: "## Fix"
	headingPattern = regexp.MustCompile(`^#+\s+`)

	// Shell command: "$ npm i", "> go mod tidy", "cargo build"
	// Group 1: leading prompt marker or tool name
	commandPattern = regexp.MustCompile(`^\s*([$>]|npm|yarn|pip|cargo|go|git|docker)\s`)

	// Prompt marker stripped from command lines before re-rendering
	promptPattern = regexp.MustCompile(`^\s*[$>]?\s*`)

	// Labeled section: "Problem: ..."
	labelPattern = regexp.MustCompile(`(?i)^(Problem|Solution|Fix|Command|Code):`)
)

// Formatter renders model output with a fixed set of styles.
type Formatter struct {
	styles Styles
}

// New creates a Formatter using the given styles.
func New(styles Styles) *Formatter {
	return &Formatter{styles: styles}
}

// Format renders text with DefaultStyles.
func Format(text string, ctx detect.ErrorContext) string {
	return New(DefaultStyles()).Format(text, ctx)
}

// Format renders a model response as styled terminal lines. It never fails:
// unknown shapes pass through and an unterminated fenced block is flushed
// at the end. ctx is read only.
func (f *Formatter) Format(text string, ctx detect.ErrorContext) string {
	var out []string

	if header := f.header(ctx); header != "" {
		out = append(out, header, "")
	}

	inCodeBlock := false
	var code []string

	for _, line := range splitLines(text) {
		if strings.HasPrefix(strings.TrimSpace(line), fence) {
			if inCodeBlock {
				out = append(out, f.codeBlock(code)...)
				code = nil
			}
			inCodeBlock = !inCodeBlock
			continue
		}

		if inCodeBlock {
			code = append(code, line)
			continue
		}

		switch {
		case headingPattern.MatchString(line):
			heading := headingPattern.ReplaceAllString(line, "")
			out = append(out, "", f.styles.Heading.Render(heading))

		case commandPattern.MatchString(line):
			command := promptPattern.ReplaceAllString(line, "")
			out = append(out, f.styles.Prompt.Render(promptMark)+command)

		case labelPattern.MatchString(line):
			label, rest, _ := strings.Cut(line, ":")
			out = append(out, "", f.styles.Label.Render(label+":")+rest)

		case strings.TrimSpace(line) == "":
			out = append(out, "")

		default:
			out = append(out, line)
		}
	}

	// Unterminated fence: flush what was collected.
	if len(code) > 0 {
		out = append(out, f.codeBlock(code)...)
	}

	return strings.Join(out, "\n")
}

// header renders "<icon> <SEVERITY> [language]", dropping whichever half
// is unknown. Returns "" when both are.
func (f *Formatter) header(ctx detect.ErrorContext) string {
	var parts []string
	if ctx.Severity != "" {
		label := strings.ToUpper(string(ctx.Severity))
		if icon, ok := severityIcons[ctx.Severity]; ok {
			label = icon + " " + label
		}
		parts = append(parts, f.styles.severity(ctx.Severity).Render(label))
	}
	if ctx.Language != detect.LanguageUnknown {
		parts = append(parts, f.styles.Language.Render("["+string(ctx.Language)+"]"))
	}
	return strings.Join(parts, " ")
}

// codeBlock indents and mutes each collected line. Lines are styled one at
// a time so the renderer never pads them to a common width.
func (f *Formatter) codeBlock(lines []string) []string {
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = f.styles.Code.Render(codeIndent + line)
	}
	return rendered
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
