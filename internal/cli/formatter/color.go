package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/questgen/internal/ranking"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ConfidenceStyle colors a [0,1] confidence: green from the strong-route
// gate up, yellow from the safe-default gate up, red below.
func ConfidenceStyle(c float64) lipgloss.Style {
	switch {
	case c >= ranking.SelectRouteStrong:
		return StyleGreen
	case c >= ranking.SelectSafeMinRoute:
		return StyleYellow
	default:
		return StyleRed
	}
}

// RuleIndicator returns a colored label for the selector rule that decided.
func RuleIndicator(rule ranking.SelectionRule) string {
	switch rule {
	case ranking.RuleExactTitle, ranking.RuleStrongRerank, ranking.RuleStrongRoute:
		return StyleGreen.Render("● " + strings.ToUpper(string(rule)))
	case ranking.RuleSafeDefault, ranking.RuleFallbackTop:
		return StyleYellow.Render("● " + strings.ToUpper(string(rule)))
	case ranking.RuleAmbiguous:
		return StyleRed.Render("● AMBIGUOUS")
	default:
		return StyleDim.Render("● " + strings.ToUpper(string(rule)))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
