package magetasks

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/sh"
)

// Run prints label, runs the command with its output attached to the
// console and reports the outcome with the elapsed time.
func Run(label, cmd string, args ...string) error {
	fmt.Fprintln(Out, stepStyle.Render("→ "+label))
	start := time.Now()
	err := sh.RunV(cmd, args...)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		Fail(fmt.Sprintf("%s (%s)", label, elapsed))
		return err
	}
	Done(fmt.Sprintf("%s (%s)", label, elapsed))
	return nil
}

// tool is an external command that developers install separately.
type tool struct {
	name    string
	install string // go install target
}

// runTool runs t like Run. A missing binary is reported with its install
// hint and is not an error.
func runTool(label string, t tool, args ...string) error {
	err := Run(label, t.name, args...)
	if err != nil && commandNotFound(err) {
		Warn(fmt.Sprintf("%s not found (install: go install %s)", t.name, t.install))
		return nil
	}
	return err
}

// commandNotFound reports whether err means the binary is not on PATH.
// mage formats exec errors with %v, so the message is checked too.
func commandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) || strings.Contains(err.Error(), "executable file not found")
}
