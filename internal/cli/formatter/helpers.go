package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// DomainBadge returns a purple route-domain label.
func DomainBadge(d string) string {
	if d == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(d)
}

// DifficultyPips renders difficulty 1..3 as filled and empty pips.
func DifficultyPips(d int) string {
	if d < 1 {
		d = 1
	}
	if d > 3 {
		d = 3
	}
	style := StyleGreen
	switch d {
	case 2:
		style = StyleYellow
	case 3:
		style = StyleRed
	}
	return style.Render(strings.Repeat("●", d)) + StyleDim.Render(strings.Repeat("○", 3-d))
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// Score formats a ranking score with fixed precision.
func Score(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
