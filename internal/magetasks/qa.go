package magetasks

import "fmt"

// QA runs the checks a change must pass: linters, race-enabled tests, the
// build and a smoke run of the built binary.
func QA() error {
	Title("QA")

	if err := LintAll(); err != nil {
		return fmt.Errorf("lint: %w", err)
	}
	if err := TestRace(); err != nil {
		return fmt.Errorf("tests: %w", err)
	}
	if err := BuildAll(); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if err := Smoke(); err != nil {
		return fmt.Errorf("smoke: %w", err)
	}

	Done("QA complete")
	return nil
}
