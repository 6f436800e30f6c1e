package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dkoosis/flatconf/internal/version"
)

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flatconf",
		Short: "Compose lint configuration fragments into a flat config",
		Long: `flatconf assembles lint configuration fragments (base rules, language
presets, project overrides) into the ordered flat config sequence a linter
consumes. Fragments are merged deterministically: severity tuples replace
each other, other arrays become sorted unions.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.AddCommand(newResolveCommand(stdin, stdout, stderr))
	rootCmd.AddCommand(newVersionCommand(stdout))

	return rootCmd
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(stdout, "flatconf %s\ncommit: %s\nbuilt:  %s\n", version.Version, version.CommitHash, version.BuildDate)
		},
	}
}
