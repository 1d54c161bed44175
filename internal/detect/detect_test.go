package detect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Language
	}{
		{
			name:  "TypeScript compiler",
			input: "src/app.ts(10,5): error TS2304: Cannot find name 'foo'.",
			want:  LanguageTypeScript,
		},
		{
			name:  "npm error",
			input: "npm ERR! code ENOENT\nnpm ERR! path package.json",
			want:  LanguageJavaScript,
		},
		{
			name: "Node.js module error",
			input: `Error: Cannot find module 'express'
Require stack:
- /Users/dev/app.js
    at Function.Module._resolveFilename (node:internal/modules/cjs/loader:933:15)`,
			want: LanguageJavaScript,
		},
		{
			name:  "Node.js TypeError with frame",
			input: "TypeError: Cannot read properties of undefined\n    at Object.<anonymous> (/app/index.js:3:15)",
			want:  LanguageJavaScript,
		},
		{
			name:  "Python traceback",
			input: "Traceback (most recent call last):\n  File \"a.py\", line 1\nModuleNotFoundError: No module named 'flask'",
			want:  LanguagePython,
		},
		{
			name:  "Go build error",
			input: "# command-line-arguments\n./main.go:10:2: undefined: fmt.Printl",
			want:  LanguageGo,
		},
		{
			name:  "Rust compiler error",
			input: "error[E0425]: cannot find value `x` in this scope\n --> src/main.rs:4:20",
			want:  LanguageRust,
		},
		{
			name:  "Java exception",
			input: "Exception in thread \"main\" java.lang.NullPointerException: boom\n\tat com.example.App.main(App.java:14)",
			want:  LanguageJava,
		},
		{
			name:  "Ruby NoMethodError",
			input: "app.rb:12:in `block in <main>': undefined method `foo' for nil (NoMethodError)\nRun `bundle install` first.",
			want:  LanguageRuby,
		},
		{
			name:  "PHP parse error",
			input: "PHP Parse error:  syntax error, unexpected '}' in /var/www/index.php on line 3",
			want:  LanguagePHP,
		},
		{
			name:  "Docker daemon conflict",
			input: "docker: Error response from daemon: Conflict. The container name \"/web\" is already in use",
			want:  LanguageDocker,
		},
		{
			name:  "git push rejected",
			input: "To github.com:org/repo.git\n ! [rejected]        main -> main (fetch first)\nerror: failed to push some refs",
			want:  LanguageGit,
		},
		{
			name:  "no markers",
			input: "hello world",
			want:  LanguageUnknown,
		},
		{
			name:  "empty input",
			input: "",
			want:  LanguageUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.input); got != tt.want {
				t.Errorf("DetectLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Python, Ruby and git each match exactly one pattern here; python is
// declared first.
func TestDetectLanguageTieKeepsEarlierLanguage(t *testing.T) {
	input := "NameError: name 'x' is not defined"

	scores := map[Language]int{}
	for _, s := range Scores(input) {
		scores[s.Language] = s.Matches
	}
	for _, lang := range []Language{LanguagePython, LanguageRuby, LanguageGit} {
		if scores[lang] != 1 {
			t.Fatalf("score[%s] = %d, want 1", lang, scores[lang])
		}
	}

	if got := DetectLanguage(input); got != LanguagePython {
		t.Errorf("DetectLanguage() = %q, want %q", got, LanguagePython)
	}
}

func TestScoresFollowDeclaredOrder(t *testing.T) {
	langs := Languages()
	want := []Language{
		LanguageTypeScript, LanguageJavaScript, LanguagePython, LanguageGo, LanguageRust,
		LanguageJava, LanguageRuby, LanguagePHP, LanguageDocker, LanguageGit,
	}
	if diff := cmp.Diff(want, langs); diff != "" {
		t.Fatalf("Languages() mismatch (-want +got):\n%s", diff)
	}

	scores := Scores("hello world")
	if len(scores) != len(want) {
		t.Fatalf("len(Scores) = %d, want %d", len(scores), len(want))
	}
	for i, s := range scores {
		if s.Language != want[i] {
			t.Errorf("Scores()[%d].Language = %q, want %q", i, s.Language, want[i])
		}
		if s.Matches != 0 {
			t.Errorf("Scores()[%d].Matches = %d, want 0", i, s.Matches)
		}
	}
}

func TestHasStackTrace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"python traceback", "Traceback (most recent call last):\n  File \"a.py\", line 1", true},
		{"node frame", "at foo.js:12:5", true},
		{"go compiler pointer", "./main.go:10:2: undefined: x", true},
		{"rust pointer", " --> src/main.rs:4:20", true},
		{"c pointer", "main.c:3:1: error: expected ';'", true},
		{"plain text", "something went wrong", false},
		{"line without column", "index.php on line 3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasStackTrace(tt.input); got != tt.want {
				t.Errorf("HasStackTrace(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractErrorType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"class-style error", "TypeError: x is not a function", "TypeError"},
		{"exception", "Exception in thread \"main\" java.lang.IllegalStateException: bad", "IllegalStateException"},
		{"rust diagnostic code", "error[E0425]: cannot find value `x`", "error[E0425]"},
		{"fatal word", "FATAL: database system is shutting down", "FATAL"},
		{"error word", "ERROR 1045 (28000): Access denied", "ERROR"},
		{"bare Error is not a type", "Error: Cannot find module 'express'", ""},
		{"no token", "something broke", ""},
		{"empty", "", ""},
		{
			"traceback names type on last line",
			"Traceback (most recent call last):\n  File \"a.py\", line 1\nModuleNotFoundError: No module named 'flask'\n",
			"ModuleNotFoundError",
		},
		{
			"first line wins over last line",
			"KeyError: 'id'\nValueError: bad",
			"KeyError",
		},
		{
			"log tail ignored without stack trace",
			"build ok\nall tests passed\nERROR",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractErrorType(tt.input); got != tt.want {
				t.Errorf("ExtractErrorType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Severity
	}{
		{"segfault", "Segmentation fault (core dumped)", SeverityCritical},
		{"critical beats warning", "segmentation fault\nwarning: foo is deprecated", SeverityCritical},
		{"go panic", "panic: runtime error: index out of range", SeverityCritical},
		{"ssh permission", "git@github.com: Permission denied (publickey).", SeverityCritical},
		{"oom", "JavaScript heap out of memory", SeverityCritical},
		{"deprecation", "DeprecationWarning: Buffer() is deprecated", SeverityWarning},
		{"timeout", "request timed out after 30s", SeverityWarning},
		{"warning beats info", "could not find config, did you mean --config?", SeverityWarning},
		{"hint", "hint: did you mean 'status'?", SeverityInfo},
		{"fallback error", "Build failed with 3 errors", SeverityError},
		{"fallback exception", "Unhandled exception", SeverityError},
		{"npm ERR is not error", "npm ERR! code ENOENT\nnpm ERR! path package.json", SeverityInfo},
		{"nothing", "all good", SeverityInfo},
		{"empty", "", SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySeverity(tt.input); got != tt.want {
				t.Errorf("ClassifySeverity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ErrorContext
	}{
		{
			name:  "unmatched input uses defaults",
			input: "hello world",
			want:  ErrorContext{Severity: SeverityInfo},
		},
		{
			name:  "python traceback",
			input: "Traceback (most recent call last):\n  File \"a.py\", line 1\nModuleNotFoundError: No module named 'flask'",
			want: ErrorContext{
				Language:      LanguagePython,
				HasStackTrace: true,
				ErrorType:     "ModuleNotFoundError",
				Severity:      SeverityError,
			},
		},
		{
			name:  "npm",
			input: "npm ERR! code ENOENT\nnpm ERR! path package.json",
			want: ErrorContext{
				Language: LanguageJavaScript,
				Severity: SeverityInfo,
			},
		},
		{
			name:  "language and severity are independent",
			input: "panic: runtime error: invalid memory address\n\ngoroutine 1 [running]:\nmain.main()\n\t/app/main.go:8:5",
			want: ErrorContext{
				Language:      LanguageGo,
				HasStackTrace: true,
				Severity:      SeverityCritical,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Classify(tt.input)); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   Severity
		wantOK bool
	}{
		{"critical", SeverityCritical, true},
		{" ERROR ", SeverityError, true},
		{"warn", SeverityWarning, true},
		{"info", SeverityInfo, true},
		{"debug", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSeverity(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseSeverity(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSeverityRankOrdersByUrgency(t *testing.T) {
	ordered := []Severity{SeverityCritical, SeverityError, SeverityWarning, SeverityInfo, ""}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("%q.Rank() = %d should be below %q.Rank() = %d",
				ordered[i-1], ordered[i-1].Rank(), ordered[i], ordered[i].Rank())
		}
	}
}
