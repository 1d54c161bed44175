package sentry

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
)

func TestScrubPII(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "macOS home path",
			input:    "Error: Cannot find module '/Users/john/code/app/index.js'",
			expected: "Error: Cannot find module '/Users/[user]/code/app/index.js'",
		},
		{
			name:     "Linux home path",
			input:    `File "/home/jane/project/main.py", line 3`,
			expected: `File "/home/[user]/project/main.py", line 3`,
		},
		{
			name:     "Windows home path",
			input:    "C:\\Users\\admin\\Documents\\project",
			expected: "C:\\Users\\[user]\\Documents\\project",
		},
		{
			name:     "case insensitive home path",
			input:    "/HOME/testuser/data",
			expected: "/HOME/[user]/data",
		},
		{
			name:     "Anthropic API key keeps prefix",
			input:    "invalid API key sk-ant-api03-abc123xyz789",
			expected: "invalid API key sk-ant-api03-[REDACTED]",
		},
		{
			name:     "OpenAI style key",
			input:    "using key sk-test1234567890",
			expected: "using key sk-[REDACTED]",
		},
		{
			name:     "mixed key styles on one line",
			input:    "keys sk-ant-api03-abc123xyz789 and sk-proj1234567890 both rejected",
			expected: "keys sk-ant-api03-[REDACTED] and sk-[REDACTED] both rejected",
		},
		{
			name:     "Google API key",
			input:    "key=AIzaSyA1234567890abcdefghijklmno rejected",
			expected: "key=[REDACTED] rejected",
		},
		{
			name:     "key in config line",
			input:    "api_key: sk-abc123xyz789def456",
			expected: "api_key: [REDACTED]",
		},
		{
			name:     "email address",
			input:    "npm ERR! contact john.doe@example.com",
			expected: "npm ERR! contact [email]",
		},
		{
			name:     "nothing to scrub",
			input:    "failed to read file: permission denied",
			expected: "failed to read file: permission denied",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "path outside home",
			input:    "/var/log/app.log",
			expected: "/var/log/app.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrubPII(tt.input); got != tt.expected {
				t.Errorf("scrubPII(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestScrubEvent(t *testing.T) {
	event := &sentry.Event{
		Message: "failed for bob@example.com",
		Exception: []sentry.Exception{
			{Type: "*errors.errorString", Value: "open /home/bob/.oops/config.yaml: permission denied"},
		},
		Breadcrumbs: []*sentry.Breadcrumb{
			{Category: "input", Message: "read /Users/bob/log.txt"},
		},
	}

	got := scrubEvent(event, nil)

	if got.Message != "failed for [email]" {
		t.Errorf("Message = %q", got.Message)
	}
	if got.Exception[0].Value != "open /home/[user]/.oops/config.yaml: permission denied" {
		t.Errorf("Exception value = %q", got.Exception[0].Value)
	}
	if got.Breadcrumbs[0].Message != "read /Users/[user]/log.txt" {
		t.Errorf("Breadcrumb = %q", got.Breadcrumbs[0].Message)
	}
}

func TestDisabledWithoutDSN(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	flush := Init("test")
	defer flush()

	// Must not panic when the SDK was never initialized.
	AddBreadcrumb("completion", "request sent")
	CaptureServiceError(errors.New("boom"), "anthropic", "claude-sonnet-4-5")
	CaptureServiceError(nil, "", "")
}
