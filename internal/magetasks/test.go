package magetasks

// TestAll runs all tests.
func TestAll() error {
	Section("Tests")
	return Run("go test", "go", "test", "./...")
}

// TestCoverage runs tests with coverage and prints the per-function report.
func TestCoverage() error {
	Section("Coverage")
	if err := Run("go test -cover", "go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return Run("coverage report", "go", "tool", "cover", "-func=coverage.out")
}

// TestRace runs tests with the race detector.
func TestRace() error {
	Section("Race detector")
	return Run("go test -race", "go", "test", "-race", "./...")
}
