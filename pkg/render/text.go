package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/flatconf/pkg/flatconfig"
)

// Text renders the sequence as terse plain text: no ANSI codes, one line per
// fragment, deterministic order. Suited to logs and tooling that greps.
type Text struct{}

// NewText creates a Text renderer.
func NewText() *Text {
	return &Text{}
}

// Render formats the sequence as plain text.
func (x *Text) Render(fragments []flatconfig.Fragment) string {
	summaries, totals := Summarize(fragments)

	var sb strings.Builder
	fmt.Fprintf(&sb, "FRAGMENTS %d rules: %d error, %d warn, %d off\n",
		totals.Fragments, totals.Error, totals.Warn, totals.Off)

	for _, s := range summaries {
		fmt.Fprintf(&sb, "[%d] %s", s.Index, displayName(s))
		if len(s.Files) > 0 {
			fmt.Fprintf(&sb, " files=%s", strings.Join(s.Files, ","))
		}
		if s.Ignores > 0 {
			fmt.Fprintf(&sb, " ignores=%d", s.Ignores)
		}
		if n := s.Rules(); n > 0 {
			fmt.Fprintf(&sb, " rules=%d(error=%d warn=%d off=%d", n, s.Error, s.Warn, s.Off)
			if s.Other > 0 {
				fmt.Fprintf(&sb, " other=%d", s.Other)
			}
			sb.WriteString(")")
		}
		if len(s.Keys) > 0 {
			fmt.Fprintf(&sb, " keys=%s", strings.Join(s.Keys, ","))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
