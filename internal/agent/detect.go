// Package agent detects AI coding agents and other non-human callers.
// When one runs oops, output is kept plain: no color and no animation.
package agent

import (
	"os"
	"strings"
)

// knownAgentEnvVars is checked in order; the first match wins.
// An empty expectedValue accepts any non-empty value.
var knownAgentEnvVars = []struct {
	envVar        string
	expectedValue string
	name          string
}{
	{"CLAUDECODE", "1", "Claude Code"},
	{"CLAUDE_CODE", "", "Claude Code"},
	{"CURSOR_AGENT", "", "Cursor"},
	{"CODEX", "", "Codex"},
	{"AIDER", "", "Aider"},
	{"CONTINUE_SESSION", "", "Continue"},
	{"CODY_AGENT", "", "Cody"},
	{"AI_AGENT", "", "AI Agent"},
	{"AGENT_MODE", "", "AI Agent"},
}

// Info describes the detected agent, if any.
type Info struct {
	IsAgent bool
	Name    string // e.g. "Claude Code"
	EnvVar  string // variable that triggered detection
}

// Detect inspects the process environment.
func Detect() Info {
	return DetectFrom(os.Getenv)
}

// DetectFrom inspects the environment through getenv.
func DetectFrom(getenv func(string) string) Info {
	for _, entry := range knownAgentEnvVars {
		value := strings.TrimSpace(getenv(entry.envVar))
		if value == "" {
			continue
		}
		if entry.expectedValue != "" && value != entry.expectedValue {
			continue
		}
		return Info{IsAgent: true, Name: entry.name, EnvVar: entry.envVar}
	}
	return Info{}
}

// Presentation is how the solution should be rendered.
type Presentation struct {
	Color   bool // styled stdout
	Animate bool // waiting indicator on stderr
}

// Terminal reports which streams are attached to a terminal.
type Terminal struct {
	Stdout bool
	Stderr bool
}

// Decide turns off styling for agents, NO_COLOR, --no-color and piped
// stdout. The waiting indicator additionally needs stderr on a terminal.
func Decide(noColorFlag bool, term Terminal, getenv func(string) string) Presentation {
	if noColorFlag || !term.Stdout || getenv("NO_COLOR") != "" || DetectFrom(getenv).IsAgent {
		return Presentation{}
	}
	return Presentation{Color: true, Animate: term.Stderr}
}
