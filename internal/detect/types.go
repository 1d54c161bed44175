package detect

import "strings"

// Language identifies the ecosystem whose diagnostics an input resembles.
type Language string

// Known ecosystem tags. LanguageUnknown is the zero value.
const (
	LanguageUnknown    Language = ""
	LanguageTypeScript Language = "typescript"
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguageJava       Language = "java"
	LanguageRuby       Language = "ruby"
	LanguagePHP        Language = "php"
	LanguageDocker     Language = "docker"
	LanguageGit        Language = "git"
)

// String returns the tag, or "unknown" for LanguageUnknown.
func (l Language) String() string {
	if l == LanguageUnknown {
		return "unknown"
	}
	return string(l)
}

// Severity is a coarse urgency classification used for display styling.
type Severity string

// Severity tiers. The zero value means "not classified" and is only seen on
// hand-built contexts; Classify always sets one of the four tiers.
const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank orders severities from most to least urgent (critical=0).
// Unclassified severities rank last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 3
	}
	return 4
}

// ParseSeverity converts a case-insensitive tier name to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical, true
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	}
	return "", false
}

// ErrorContext is the structured result of classifying raw error text.
// It is a plain value; callers get their own copy.
type ErrorContext struct {
	Language      Language `json:"language,omitempty"`
	HasStackTrace bool     `json:"has_stack_trace"`
	ErrorType     string   `json:"error_type,omitempty"`
	Severity      Severity `json:"severity"`
}

// Score is the number of a language's patterns that matched an input.
type Score struct {
	Language Language `json:"language"`
	Matches  int      `json:"matches"`
}
