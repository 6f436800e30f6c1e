package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/flatconf/internal/config"
	xlog "github.com/dkoosis/flatconf/internal/log"
	"github.com/dkoosis/flatconf/pkg/flatconfig"
	"github.com/dkoosis/flatconf/pkg/presets/typescript"
	"github.com/dkoosis/flatconf/pkg/render"
	"github.com/dkoosis/flatconf/pkg/source"
)

const stdinArg = "-"

func newResolveCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var flags config.CliFlags

	cmd := &cobra.Command{
		Use:   "resolve [fragment files...]",
		Short: "Compose fragments and print the resulting flat config",
		Long: `Compose the global ignores, the base rule set, optional TypeScript entries
and the given fragment files, in that order. A fragment file holds a mapping
(one fragment) or a sequence of mappings (merged into one fragment, earlier
members winning). Use "-" to read a fragment from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.StrictSet = cmd.Flags().Changed("strict")
			flags.DebugSet = cmd.Flags().Changed("debug")
			flags.Fragments = append(flags.Fragments, args...)
			return runResolve(cmd.Context(), flags, stdin, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.ConfigFile, "config", "", "Config file (default: search for "+config.FileName+")")
	f.BoolVar(&flags.Strict, "strict", false, "Use every core rule instead of the recommended set")
	f.StringSliceVar(&flags.Files, "files", nil, "Default file globs for fragments without files")
	f.StringSliceVar(&flags.Ignores, "ignore", nil, "Globally ignored globs")
	f.StringSliceVar(&flags.IgnoreFiles, "ignore-file", nil, "Gitignore-style files to convert to ignores")
	f.StringVar(&flags.Format, "format", "", "Output format: auto, json, terminal, text")
	f.StringVar(&flags.Theme, "theme", "", "Terminal theme: "+fmt.Sprint(render.ThemeNames()))
	f.StringVarP(&flags.Output, "output", "o", "", "Write output to a file (atomically) instead of stdout")
	f.BoolVar(&flags.TypeScript, "typescript", false, "Add the TypeScript entries")
	f.StringVar(&flags.TypeChecked, "type-checked", "", "TypeScript type-aware rules: off, essential, full")
	f.BoolVar(&flags.Lazy, "lazy", false, "Read fragment files at resolution time")
	f.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	return cmd
}

func runResolve(ctx context.Context, flags config.CliFlags, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.ResolveConfig(flags)
	if err != nil {
		return usageError{err}
	}

	logger := xlog.New(xlog.Config{Level: cfg.LogLevel, Output: stderr})
	logger.Debug().
		Str(xlog.FieldPath, cfg.ConfigPath).
		Str("strict_source", cfg.StrictSource).
		Str("format_source", cfg.FormatSource).
		Msg("resolved config")

	var entries []flatconfig.Entry
	if tsOpts, ok := cfg.TypeScriptOptions(); ok {
		tsEntries, err := typescript.Entries(tsOpts)
		if err != nil {
			return fmt.Errorf("typescript entries: %w", err)
		}
		entries = append(entries, tsEntries...)
	}

	fragments, err := loadFragments(cfg.Fragments, cfg.Lazy, stdin)
	if err != nil {
		return err
	}
	entries = append(entries, fragments...)

	ignoreLogger := xlog.WithComponent(logger, "gitignore")
	composer := flatconfig.New(
		flatconfig.WithIgnoreSource(flatconfig.GitignoreSource(flatconfig.GitignoreConfig{Logger: &ignoreLogger})),
		flatconfig.WithLogger(xlog.WithComponent(logger, "compose")),
	)
	out, err := composer.Compose(ctx, cfg.Options(), entries...)
	if err != nil {
		return err
	}

	return writeOutput(cfg, out, stdout, logger)
}

// loadFragments builds one entry per path, keeping argument order. Eager
// loading reports every unreadable file at once.
func loadFragments(paths []string, lazy bool, stdin io.Reader) ([]flatconfig.Entry, error) {
	entries := make([]flatconfig.Entry, len(paths))

	var eager []string
	var eagerIdx []int
	for i, p := range paths {
		switch {
		case p == stdinArg:
			e, err := source.Read(stdin)
			if err != nil {
				return nil, fmt.Errorf("stdin: %w", err)
			}
			entries[i] = e
		case lazy:
			entries[i] = source.Lazy(p)
		default:
			eager = append(eager, p)
			eagerIdx = append(eagerIdx, i)
		}
	}

	loaded, err := source.LoadAll(eager)
	if err != nil {
		return nil, err
	}
	for j, e := range loaded {
		entries[eagerIdx[j]] = e
	}
	return entries, nil
}

func writeOutput(cfg *config.ResolvedConfig, out []flatconfig.Fragment, stdout io.Writer, logger zerolog.Logger) error {
	target := stdout
	if cfg.Output != "" {
		target = nil
	}
	format := resolveFormat(cfg.Format, target)
	text := selectRenderer(format, cfg.Theme, stdout).Render(out)

	if cfg.Output == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}

	logger.Debug().Str(xlog.FieldPath, cfg.Output).Str(xlog.FieldFormat, format).Msg("writing output")
	return writeFileAtomic(cfg.Output, []byte(text))
}

// writeFileAtomic replaces path with data: the file is either fully
// written or untouched.
func writeFileAtomic(path string, data []byte) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending output file: %w", err)
	}
	defer func() { _ = pendingFile.Cleanup() }()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace output file: %w", err)
	}
	return nil
}

func selectRenderer(format, themeName string, w io.Writer) render.Renderer {
	theme := render.ThemeByName(themeName)
	// Honor NO_COLOR
	if os.Getenv("NO_COLOR") != "" {
		theme = render.MonoTheme()
	}
	return render.ByName(format, theme, termWidth(w))
}

// resolveFormat maps "auto" to terminal output for a TTY and JSON
// otherwise. A nil writer means output goes to a file.
func resolveFormat(format string, w io.Writer) string {
	if format != config.FormatAuto {
		return format
	}
	if w != nil && isTTYWriter(w) {
		return config.FormatTerminal
	}
	return config.FormatJSON
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width of w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
