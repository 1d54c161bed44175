package detect

import "regexp"

// languagePattern binds an ecosystem tag to the markers that vote for it.
type languagePattern struct {
	language Language
	patterns []*regexp.Regexp
}

// ci compiles a case-insensitive pattern.
func ci(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

// languagePatterns is scanned in declaration order. On equal scores the
// earlier entry wins, so order here is observable behavior.
// Patterns use lazy quantifiers (.+?) where possible to prevent ReDoS.
var languagePatterns = []languagePattern{
	{LanguageTypeScript, []*regexp.Regexp{
		ci(`error TS\d+:`),
		ci(`\.tsx?\(\d+,\d+\)`),
		ci(`\.tsx?:\d+:\d+`),
		ci(`\btsc\b`),
		ci(`tsconfig\.json`),
	}},
	{LanguageJavaScript, []*regexp.Regexp{
		ci(`npm ERR!`),
		ci(`yarn error`),
		ci(`SyntaxError:`),
		ci(`TypeError:`),
		ci(`ReferenceError:`),
		ci(`at .+?\.js:\d+:\d+`),
		ci(`node_modules`),
		ci(`\bwebpack\b`),
		ci(`\bvite\b`),
		ci(`Cannot find module`),
		ci(`node:internal`),
	}},
	{LanguagePython, []*regexp.Regexp{
		ci(`Traceback \(most recent call last\)`),
		ci(`File ".+?\.py", line \d+`),
		ci(`\w+Error:`),
		ci(`pip install`),
		ci(`python\d?\.\d+`),
		ci(`\bdjango\b`),
		ci(`\bflask\b`),
	}},
	{LanguageGo, []*regexp.Regexp{
		ci(`go build`),
		ci(`cannot find package`),
		ci(`undefined:`),
		ci(`go\.mod`),
		ci(`\.go:\d+:\d+:`),
		ci(`goroutine \d+ \[`),
	}},
	{LanguageRust, []*regexp.Regexp{
		ci(`error\[E\d+\]`),
		ci(`cargo build`),
		ci(`--> .+?\.rs:\d+:\d+`),
		ci(`\brustc\b`),
		ci(`expected .+?, found .+`),
	}},
	{LanguageJava, []*regexp.Regexp{
		ci(`Exception in thread`),
		ci(`\w+Exception:`),
		ci(`at .+?\.java:\d+`),
		ci(`\bgradle\b`),
		ci(`\bmaven\b`),
	}},
	{LanguageRuby, []*regexp.Regexp{
		ci(`\.rb:\d+:in`),
		ci(`\w+Error:`),
		ci(`gem install`),
		ci(`\bbundler?\b`),
		ci(`\bGemfile\b`),
	}},
	{LanguagePHP, []*regexp.Regexp{
		ci(`Fatal error:`),
		ci(`Parse error:`),
		ci(`in .+?\.php on line \d+`),
		ci(`\bcomposer\b`),
	}},
	{LanguageDocker, []*regexp.Regexp{
		ci(`docker`),
		ci(`dockerfile`),
		ci(`\bcontainer\b`),
		ci(`image .+? not found`),
	}},
	{LanguageGit, []*regexp.Regexp{
		ci(`fatal: .+`),
		ci(`error: .+`),
		ci(`\bgit\s`),
		ci(`\[rejected\]`),
	}},
}

// Stack trace markers. Not tied to the detected language.
var stackTracePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bat .+:\d+:\d+`),
	regexp.MustCompile(`Traceback`),
	regexp.MustCompile(`\.(?:rs|go|c|cc|cpp|h|hpp):\d+:\d+`),
}

// errorTypePattern is tried against a single line; the leftmost match wins.
//
// Group 1: class-style name (TypeError, NullPointerException)
// Group 2: bracketed diagnostic code (error[E0425])
// Group 3: bare severity word
var errorTypePattern = regexp.MustCompile(
	`\b([A-Z]\w*(?:Error|Exception))\b|\b((?i:error)\[\w+\])|\b(FATAL|ERROR)\b`,
)

// severityTier is one rung of the severity ladder.
type severityTier struct {
	severity Severity
	patterns []*regexp.Regexp
}

// severityTiers are evaluated top to bottom; the first tier with any match
// decides. Text that matches none falls through to fallbackErrorPattern.
var severityTiers = []severityTier{
	{SeverityCritical, []*regexp.Regexp{
		ci(`segmentation fault|\bSIGSEGV\b`),
		ci(`core dumped`),
		ci(`out of memory|\bOOMKilled\b`),
		ci(`\bkilled\b`),
		ci(`\bpanic\b`),
		ci(`\babort(?:ed)?\b`),
		ci(`stack overflow`),
		ci(`permission denied`),
		ci(`authentication failed`),
		ci(`vulnerabilit(?:y|ies)`),
	}},
	{SeverityWarning, []*regexp.Regexp{
		ci(`deprecat`),
		ci(`time(?:d)?\s?out`),
		ci(`\bretry(?:ing)?\b`),
		ci(`\bskipping\b`),
		ci(`\bfall(?:ing)?\s?back\b`),
		ci(`\bmissing\b`),
		ci(`could not find`),
	}},
	{SeverityInfo, []*regexp.Regexp{
		ci(`\bnotice\b`),
		ci(`\bsuggestion\b`),
		ci(`\bhint\b`),
		ci(`did you mean`),
		ci(`\bconsider\b`),
	}},
}

// fallbackErrorPattern promotes otherwise unmarked text to SeverityError.
var fallbackErrorPattern = ci(`error|exception|failed|failure`)
