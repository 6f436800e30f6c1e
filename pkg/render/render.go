// Package render formats a composed configuration sequence for output.
package render

import "github.com/dkoosis/flatconf/pkg/flatconfig"

// Renderer converts a fragment sequence to formatted output.
type Renderer interface {
	Render(fragments []flatconfig.Fragment) string
}

// Format names accepted by [ByName].
const (
	FormatJSON     = "json"
	FormatTerminal = "terminal"
	FormatText     = "text"
)

// ByName returns the renderer for format. Terminal output uses theme and
// width; unknown formats fall back to JSON, the only format a linter can
// consume.
func ByName(format string, theme Theme, width int) Renderer {
	switch format {
	case FormatTerminal:
		return NewTerminal(theme, width)
	case FormatText:
		return NewText()
	default:
		return NewJSON()
	}
}
