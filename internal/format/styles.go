package format

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muin-company/oops/internal/detect"
	"github.com/muin-company/oops/internal/tui"
)

// Styles decorates the pieces of a rendered solution. Every style must be
// additive: rendering a line may wrap it in escape codes but never change
// its characters, so tab conversion is disabled throughout.
type Styles struct {
	Heading  lipgloss.Style
	Label    lipgloss.Style
	Code     lipgloss.Style
	Prompt   lipgloss.Style
	Language lipgloss.Style
	Severity map[detect.Severity]lipgloss.Style
}

// severityIcons pairs each tier with the glyph shown in the header.
var severityIcons = map[detect.Severity]string{
	detect.SeverityCritical: "✖",
	detect.SeverityError:    "✗",
	detect.SeverityWarning:  "⚠",
	detect.SeverityInfo:     "●",
}

// DefaultStyles returns the terminal palette shared with the rest of the CLI.
func DefaultStyles() Styles {
	return Styles{
		Heading:  keepTabs(tui.BoldWarningStyle),
		Label:    keepTabs(tui.BoldWarningStyle),
		Code:     keepTabs(tui.MutedStyle),
		Prompt:   keepTabs(tui.BrandStyle),
		Language: keepTabs(tui.AccentStyle),
		Severity: map[detect.Severity]lipgloss.Style{
			detect.SeverityCritical: keepTabs(tui.CriticalStyle),
			detect.SeverityError:    keepTabs(tui.ErrorStyle),
			detect.SeverityWarning:  keepTabs(tui.WarningStyle),
			detect.SeverityInfo:     keepTabs(tui.AccentStyle),
		},
	}
}

// PlainStyles returns styles that add no decoration at all.
func PlainStyles() Styles {
	plain := keepTabs(lipgloss.NewStyle())
	return Styles{
		Heading:  plain,
		Label:    plain,
		Code:     plain,
		Prompt:   plain,
		Language: plain,
		Severity: map[detect.Severity]lipgloss.Style{},
	}
}

func keepTabs(s lipgloss.Style) lipgloss.Style {
	return s.TabWidth(lipgloss.NoTabConversion)
}

func (s Styles) severity(sev detect.Severity) lipgloss.Style {
	if style, ok := s.Severity[sev]; ok {
		return style
	}
	return keepTabs(lipgloss.NewStyle())
}
