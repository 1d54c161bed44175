// Package detect classifies raw error output: which ecosystem produced it,
// whether it carries a stack trace, the error type named on its first line,
// and how urgent it looks.
//
// Everything here is a pure function over static pattern tables; nothing
// fails and nothing is cached between calls.
package detect

import "strings"

// Classify builds an ErrorContext for text. It never fails: input that
// matches no marker yields an unknown language, no error type, no stack
// trace and SeverityInfo.
func Classify(text string) ErrorContext {
	return ErrorContext{
		Language:      DetectLanguage(text),
		HasStackTrace: HasStackTrace(text),
		ErrorType:     ExtractErrorType(text),
		Severity:      ClassifySeverity(text),
	}
}

// Languages returns the known ecosystem tags in tie-break order.
func Languages() []Language {
	langs := make([]Language, len(languagePatterns))
	for i, lp := range languagePatterns {
		langs[i] = lp.language
	}
	return langs
}

// Scores counts matching patterns per language, in tie-break order.
func Scores(text string) []Score {
	scores := make([]Score, len(languagePatterns))
	for i, lp := range languagePatterns {
		scores[i] = Score{Language: lp.language, Matches: countMatches(lp, text)}
	}
	return scores
}

// DetectLanguage returns the language with the most matching patterns.
// A later language must score strictly higher to displace an earlier one,
// and a language scoring zero is never selected.
func DetectLanguage(text string) Language {
	best := LanguageUnknown
	bestScore := 0
	for _, lp := range languagePatterns {
		if score := countMatches(lp, text); score > bestScore {
			best = lp.language
			bestScore = score
		}
	}
	return best
}

func countMatches(lp languagePattern, text string) int {
	n := 0
	for _, re := range lp.patterns {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// HasStackTrace reports whether text contains a stack frame, a traceback
// header or a compiler source pointer.
func HasStackTrace(text string) bool {
	for _, re := range stackTracePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ExtractErrorType returns the error token named on the first line of text.
// When the first line names none and the text carries a stack trace, the
// last non-blank line is tried instead, since tracebacks print the exception
// summary last.
func ExtractErrorType(text string) string {
	first, last := firstAndLastLines(text)
	if t := matchErrorType(first); t != "" {
		return t
	}
	if last == first || !HasStackTrace(text) {
		return ""
	}
	return matchErrorType(last)
}

func matchErrorType(line string) string {
	m := errorTypePattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}

// firstAndLastLines returns the first line and the last non-blank line.
func firstAndLastLines(text string) (first, last string) {
	first, _, _ = strings.Cut(text, "\n")
	first = strings.TrimSuffix(first, "\r")

	rest := strings.TrimRight(text, " \t\r\n")
	if i := strings.LastIndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	}
	last = strings.TrimSuffix(rest, "\r")
	return first, last
}

// ClassifySeverity walks the severity tiers in order and returns the first
// tier with a match. Unmarked text is SeverityError when it mentions an
// error or failure, SeverityInfo otherwise.
func ClassifySeverity(text string) Severity {
	for _, tier := range severityTiers {
		for _, re := range tier.patterns {
			if re.MatchString(text) {
				return tier.severity
			}
		}
	}
	if fallbackErrorPattern.MatchString(text) {
		return SeverityError
	}
	return SeverityInfo
}
