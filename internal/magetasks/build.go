package magetasks

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/sh"
)

// LDFlags returns the linker flags that stamp version information into
// internal/version.
func LDFlags(version, commit, date string) string {
	return fmt.Sprintf("-s -w -X '%s/internal/version.Version=%s' -X '%s/internal/version.CommitHash=%s' -X '%s/internal/version.BuildDate=%s'",
		ModulePath, version, ModulePath, commit, ModulePath, date)
}

// BuildAll builds all binaries
func BuildAll() error {
	Section("Build")

	ldflags := LDFlags(getGitVersion(), getGitCommit(), time.Now().UTC().Format(time.RFC3339))

	return Run("go build "+BinPath, "go", "build", "-ldflags", ldflags, "-o", BinPath, MainPackage)
}

// Smoke runs the built binary over the strictest TypeScript setup and
// renders the summary, catching catalog or preset data that fails to load.
func Smoke() error {
	Section("Smoke")
	return Run("flatconf resolve --typescript --type-checked full", BinPath,
		"resolve", "--strict", "--typescript", "--type-checked", "full", "--format", "text")
}

// Clean removes build artifacts
func Clean() error {
	Section("Clean")

	if err := os.RemoveAll("./bin"); err != nil {
		return err
	}
	_ = os.Remove("coverage.out")
	_ = sh.Run("go", "clean", "-cache")

	Done("removed ./bin and coverage.out")
	return nil
}

func getGitVersion() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty", "--match=v*")
	if err != nil {
		return "dev"
	}
	return strings.TrimSpace(out)
}

func getGitCommit() string {
	out, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(out)
}
