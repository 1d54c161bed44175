package util

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "zero", duration: 0, want: "0ms"},
		{name: "negative clamps to zero", duration: -time.Second, want: "0ms"},
		{name: "milliseconds", duration: 850 * time.Millisecond, want: "850ms"},
		{name: "one second", duration: time.Second, want: "1.0s"},
		{name: "fractional seconds", duration: 1234 * time.Millisecond, want: "1.2s"},
		{name: "just under a minute", duration: 59*time.Second + 400*time.Millisecond, want: "59.4s"},
		{name: "one minute", duration: time.Minute, want: "1m0s"},
		{name: "minutes and seconds", duration: 2*time.Minute + 5*time.Second, want: "2m5s"},
		{name: "rounds to nearest second", duration: 90*time.Second + 600*time.Millisecond, want: "1m31s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatElapsed(tt.duration); got != tt.want {
				t.Errorf("FormatElapsed(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}
