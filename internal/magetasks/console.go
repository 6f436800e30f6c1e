package magetasks

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Out receives task banners and status lines. Command output goes
// straight to the process stdout.
var Out io.Writer = os.Stdout

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	stepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Title prints the banner of a top-level target.
func Title(name string) {
	fmt.Fprintf(Out, "\n%s\n", titleStyle.Render("flatconf · "+name))
}

// Section starts a group of steps.
func Section(name string) {
	fmt.Fprintf(Out, "\n%s\n", titleStyle.Render("▸ "+name))
}

func Done(msg string) { fmt.Fprintln(Out, okStyle.Render("✓ "+msg)) }
func Warn(msg string) { fmt.Fprintln(Out, warnStyle.Render("! "+msg)) }
func Fail(msg string) { fmt.Fprintln(Out, failStyle.Render("✗ "+msg)) }
