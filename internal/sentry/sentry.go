// Package sentry reports completion service failures and crashes. It is
// disabled unless SENTRY_DSN is set. Piped error text often carries home
// paths and credentials, so every event is scrubbed before it is sent.
package sentry

import (
	"os"
	"regexp"
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

var (
	homePathPattern  = regexp.MustCompile(`(?i)(/(?:Users|home)/|[A-Z]:\\Users\\)[^/\\\s]+`)
	keyValuePattern  = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)\S+`)
	openKeyPattern   = regexp.MustCompile(`\bsk-((?:ant-[a-z0-9]+-)?)[A-Za-z0-9_-]{8,}`)
	googleKeyPattern = regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{20,}`)
	emailPattern     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// Init configures the SDK and returns a flush function to defer.
func Init(version string) func() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return func() {}
	}

	env := os.Getenv("SENTRY_ENVIRONMENT")
	if env == "" {
		env = "production"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          "oops@" + version,
		Environment:      env,
		AttachStacktrace: true,
		SampleRate:       1.0,
		BeforeSend:       scrubEvent,
	})
	if err != nil {
		return func() {}
	}

	return func() {
		sentry.Flush(flushTimeout)
	}
}

// CaptureServiceError reports a failed completion, tagged with the
// provider and model. Safe to call when Sentry is not configured.
func CaptureServiceError(err error, provider, model string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("provider", provider)
		scope.SetTag("model", model)
		sentry.CaptureException(err)
	})
}

// AddBreadcrumb records a pipeline stage.
func AddBreadcrumb(category, message string) {
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: category,
		Message:  message,
		Level:    sentry.LevelInfo,
	})
}

// RecoverAndPanic reports a panic, then re-panics. Defer it at entry points.
func RecoverAndPanic() {
	if r := recover(); r != nil {
		sentry.CurrentHub().Recover(r)
		sentry.Flush(flushTimeout)
		panic(r)
	}
}

func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	event.Message = scrubPII(event.Message)
	for i := range event.Exception {
		event.Exception[i].Value = scrubPII(event.Exception[i].Value)
	}
	for i := range event.Breadcrumbs {
		event.Breadcrumbs[i].Message = scrubPII(event.Breadcrumbs[i].Message)
	}
	return event
}

// scrubPII masks user names in home paths, credentials and email addresses.
func scrubPII(s string) string {
	if s == "" {
		return s
	}
	s = homePathPattern.ReplaceAllString(s, "${1}[user]")
	s = keyValuePattern.ReplaceAllString(s, "${1}[REDACTED]")
	s = openKeyPattern.ReplaceAllString(s, "sk-${1}[REDACTED]")
	s = googleKeyPattern.ReplaceAllString(s, "[REDACTED]")
	s = emailPattern.ReplaceAllString(s, "[email]")
	return s
}
