package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderConfidence renders a confidence bar like [████░░░░] 45%, colored by
// ConfidenceStyle.
func RenderConfidence(c float64, width int) string {
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(c * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	return fmt.Sprintf("[%s] %3.0f%%", ConfidenceStyle(c).Render(bar), c*100)
}
