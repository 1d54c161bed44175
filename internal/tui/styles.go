package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic color palette - use these consistently across all commands.
const (
	ColorBrand     = "42"  // Green - oops brand, shell prompts
	ColorPrimary   = "255" // White - main text, emphasis
	ColorSecondary = "245" // Light gray - supporting text
	ColorMuted     = "240" // Dark gray - hints, code blocks
	ColorError     = "203" // Red - errors, failures
	ColorCritical  = "196" // Bright red - crashes, security
	ColorWarning   = "214" // Orange - cautions, section labels
	ColorAccent    = "45"  // Cyan - language tags (use sparingly)
)

// Common styles used across all commands.
var (
	BrandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrand))

	// Text hierarchy
	PrimaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimary))
	SecondaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondary))
	MutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle      = MutedStyle.Italic(true)

	// Status indicators
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	CriticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCritical)).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	AccentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	// Bold variants
	BoldStyle        = lipgloss.NewStyle().Bold(true)
	BoldWarningStyle = WarningStyle.Bold(true)
)

// DisableColor switches the default renderer to plain ASCII output.
// Every style above renders through it, so this is global.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Bullet returns a muted bullet point.
func Bullet() string {
	return MutedStyle.Render("·")
}

// Header renders the branding line used by verbose output.
// Format: "oops v0.1.0 detect" (brand green + white command)
func Header(version, commandName string) string {
	return BrandStyle.Render("oops") + " " + BrandStyle.Render("v"+version) + " " + PrimaryStyle.Render(commandName)
}

// Badge renders a muted "[source]" tag.
func Badge(source string) string {
	return MutedStyle.Render("[" + source + "]")
}

// ExitError returns an error exit message with red X.
// Message should be capitalized (e.g., "No input received").
func ExitError(message string) string {
	return ErrorStyle.Render("✗") + " " + message
}

// Hint renders an indented remediation line under an ExitError.
func Hint(message string) string {
	return "  " + MutedStyle.Render(message)
}

// Elapsed renders the verbose timing notice.
func Elapsed(text string) string {
	return MutedStyle.Render("⚡ " + text)
}
