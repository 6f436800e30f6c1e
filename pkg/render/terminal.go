package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/flatconf/pkg/flatconfig"
)

const (
	maxNameWidth = 48
	anonymous    = "(unnamed)"
)

// Terminal renders a styled summary of the sequence via lipgloss. It is not
// safe for concurrent use.
type Terminal struct {
	theme  Theme
	width  int
	titler cases.Caser
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width, titler: cases.Title(language.English)}
}

// Render formats the sequence for terminal display: a header with rule
// totals, then one block per fragment.
func (t *Terminal) Render(fragments []flatconfig.Fragment) string {
	summaries, totals := Summarize(fragments)

	var sb strings.Builder
	sb.WriteString(t.renderHeader(totals))
	sb.WriteString("\n")

	maxName := 0
	for _, s := range summaries {
		if w := runewidth.StringWidth(displayName(s)); w > maxName {
			maxName = w
		}
	}
	if maxName > maxNameWidth {
		maxName = maxNameWidth
	}

	for _, s := range summaries {
		sb.WriteString(t.renderFragment(s, maxName))
	}
	return sb.String()
}

func (t *Terminal) renderHeader(totals Totals) string {
	label := fmt.Sprintf("%d fragments", totals.Fragments)
	if totals.Fragments == 1 {
		label = "1 fragment"
	}
	parts := []string{t.theme.Bold.Render(label)}
	if n := totals.Error; n > 0 {
		parts = append(parts, t.theme.Error.Render(fmt.Sprintf("%s %d error", t.theme.Icons.Error, n)))
	}
	if n := totals.Warn; n > 0 {
		parts = append(parts, t.theme.Warning.Render(fmt.Sprintf("%s %d warn", t.theme.Icons.Warn, n)))
	}
	if n := totals.Off; n > 0 {
		parts = append(parts, t.theme.Muted.Render(fmt.Sprintf("%s %d off", t.theme.Icons.Off, n)))
	}
	return strings.Join(parts, "  ")
}

func (t *Terminal) renderFragment(s FragmentSummary, nameWidth int) string {
	var sb strings.Builder

	icon := t.theme.Icons.Fragment
	if s.Ignores > 0 && s.Rules() == 0 && len(s.Files) == 0 {
		icon = t.theme.Icons.Ignores
	}
	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%2d ", s.Index)))
	sb.WriteString(t.theme.Primary.Render(icon + " "))

	name := runewidth.Truncate(displayName(s), nameWidth, "...")
	sb.WriteString(t.theme.Bold.Render(runewidth.FillRight(name, nameWidth)))

	if n := s.Rules(); n > 0 {
		sb.WriteString("  ")
		sb.WriteString(t.ruleCounts(s))
	}
	sb.WriteString("\n")

	indent := "     "
	avail := t.width - runewidth.StringWidth(indent)
	if len(s.Files) > 0 {
		sb.WriteString(indent)
		sb.WriteString(t.field("files", strings.Join(s.Files, ", "), avail))
		sb.WriteString("\n")
	}
	if s.Ignores > 0 {
		sb.WriteString(indent)
		sb.WriteString(t.field("ignores", fmt.Sprintf("%d patterns", s.Ignores), avail))
		sb.WriteString("\n")
	}
	if len(s.Keys) > 0 {
		sb.WriteString(indent)
		sb.WriteString(t.field("keys", strings.Join(s.Keys, " "+t.theme.Icons.Bullet+" "), avail))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) ruleCounts(s FragmentSummary) string {
	var parts []string
	if s.Error > 0 {
		parts = append(parts, t.theme.Error.Render(fmt.Sprintf("%d error", s.Error)))
	}
	if s.Warn > 0 {
		parts = append(parts, t.theme.Warning.Render(fmt.Sprintf("%d warn", s.Warn)))
	}
	if s.Off > 0 {
		parts = append(parts, t.theme.Muted.Render(fmt.Sprintf("%d off", s.Off)))
	}
	if s.Other > 0 {
		parts = append(parts, t.theme.Muted.Render(fmt.Sprintf("%d other", s.Other)))
	}
	return strings.Join(parts, " ")
}

// field renders "Label: value", truncating value to fit width cells.
func (t *Terminal) field(label, value string, width int) string {
	label = t.titler.String(label) + ": "
	value = runewidth.Truncate(value, width-runewidth.StringWidth(label), "...")
	return t.theme.Muted.Render(label) + value
}

func displayName(s FragmentSummary) string {
	if s.Name == "" {
		return anonymous
	}
	return s.Name
}
