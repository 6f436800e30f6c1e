// flatconf composes lint configuration fragments into the flat config
// sequence a linter loads.
//
// Usage:
//
//	flatconf resolve base.yaml overrides.json > eslint.config.json
//	flatconf resolve --strict --typescript --type-checked essential -o eslint.config.json
//	cat fragment.yaml | flatconf resolve -
//
// Output modes (auto-detected):
//
//	terminal  styled summary (default when TTY)
//	json      the composed sequence (default when piped or writing a file)
//	text      terse plain-text summary
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// usageError marks errors caused by invalid invocation.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// run executes the command and returns the process exit code: 0 on
// success, 1 when composing fails, 2 for invalid usage.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCommand(stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "flatconf: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}
