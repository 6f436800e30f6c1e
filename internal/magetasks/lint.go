package magetasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magefile/mage/sh"
)

var (
	staticcheck = tool{"staticcheck", "honnef.co/go/tools/cmd/staticcheck@latest"}
	golangci    = tool{"golangci-lint", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest"}
	gosec       = tool{"gosec", "github.com/securego/gosec/v2/cmd/gosec@latest"}
)

// sourceDirs are the directories holding the module's Go code.
var sourceDirs = []string{"cmd", "internal", "pkg"}

// LintAll runs every linter and reports all failures together.
func LintAll() error {
	Section("Lint")

	var errs []error
	for _, lint := range []func() error{LintFormat, LintVet, LintStaticcheck, LintGolangci, LintSecurity} {
		if err := lint(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LintFormat fails when a Go file under sourceDirs is not gofmt-clean.
func LintFormat() error {
	out, err := sh.Output("gofmt", append([]string{"-l"}, sourceDirs...)...)
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if files := unformatted(out); len(files) > 0 {
		Fail("gofmt: " + strings.Join(files, ", "))
		return fmt.Errorf("%d files need gofmt", len(files))
	}
	Done("gofmt")
	return nil
}

func unformatted(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files
}

// LintVet runs go vet.
func LintVet() error {
	return Run("go vet", "go", "vet", "./...")
}

// LintStaticcheck runs staticcheck when it is installed.
func LintStaticcheck() error {
	return runTool("staticcheck", staticcheck, "./...")
}

// LintGolangci runs golangci-lint when it is installed.
func LintGolangci() error {
	return runTool("golangci-lint", golangci, "run", "--timeout=5m", "./...")
}

// LintGolangciFix runs golangci-lint with auto-fixes.
func LintGolangciFix() error {
	return runTool("golangci-lint --fix", golangci, "run", "--fix", "--timeout=5m", "./...")
}

// LintSecurity runs gosec when it is installed.
func LintSecurity() error {
	return runTool("gosec", gosec, "-quiet", "./...")
}
