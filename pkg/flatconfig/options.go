package flatconfig

import "github.com/dkoosis/flatconf/pkg/merge"

// Glob constants for JavaScript and TypeScript sources.
const (
	GlobSrcExt = "?([cm])[jt]s?(x)"
	GlobSrc    = "**/*." + GlobSrcExt
	GlobTS     = "**/*.?([cm])ts"
	GlobTSX    = "**/*.?([cm])tsx"
)

// DefaultGlobSrc returns the default file scope for fragments.
func DefaultGlobSrc() []string {
	return []string{GlobSrc}
}

// DefaultGlobTSSrc returns the file scope for TypeScript fragments.
func DefaultGlobTSSrc() []string {
	return []string{GlobTS, GlobTSX}
}

// DefaultIgnoreFiles returns the ignore files read when none are given.
func DefaultIgnoreFiles() []string {
	return []string{".gitignore"}
}

// GlobExclude returns the globs excluded from every lint run.
func GlobExclude() []string {
	return []string{
		"**/node_modules",
		"**/dist",
		"**/package-lock.json",
		"**/yarn.lock",
		"**/pnpm-lock.yaml",
		"**/bun.lockb",
		"**/output",
		"**/coverage",
		"**/temp",
		"**/.vitepress/cache",
		"**/.nuxt",
		"**/.next",
		"**/.vercel",
		"**/.changeset",
		"**/.idea",
		"**/.cache",
		"**/.output",
		"**/.vite-inspect",
		"**/CHANGELOG*.md",
		"**/*.min.*",
		"**/LICENSE*",
		"**/__snapshots__",
		"**/auto-import?(s).d.ts",
		"**/components.d.ts",
	}
}

// Options is a partial configuration request. Unset fields take defaults in
// [ResolveOptions].
type Options struct {
	// Files scopes every fragment that does not declare its own "files".
	Files []string
	// Ignores are globally excluded globs.
	Ignores []string
	// IgnoreFiles are gitignore-style files converted to ignore globs.
	IgnoreFiles []string
	// Strict selects the exhaustive base rule set instead of the recommended one.
	Strict bool

	// Pass-through fragment fields merged over the base rule set.
	Rules           map[string]any
	LanguageOptions map[string]any
	LinterOptions   map[string]any
	Settings        map[string]any

	// Extra holds any other fragment fields. Typed fields above take
	// precedence over keys of the same name.
	Extra Fragment
}

// ResolvedOptions is the fully defaulted configuration request.
type ResolvedOptions struct {
	Files       []string
	Ignores     []string
	IgnoreFiles []string
	Strict      bool

	// Rest holds every pass-through field.
	Rest Fragment
}

const (
	optFiles       = "files"
	optIgnores     = "ignores"
	optIgnoreFiles = "ignoreFiles"
	optStrict      = "strict"
)

// ResolveOptions merges opts over the defaults with the default merger.
func ResolveOptions(opts Options) ResolvedOptions {
	return resolveOptions(merge.New(), opts)
}

func resolveOptions(m *merge.Merger, opts Options) ResolvedOptions {
	defaults := map[string]any{
		optFiles:       toAny(DefaultGlobSrc()),
		optIgnores:     toAny(GlobExclude()),
		optIgnoreFiles: toAny(DefaultIgnoreFiles()),
		optStrict:      false,
	}

	partial := map[string]any{}
	for k, v := range opts.Extra {
		partial[k] = v
	}
	setIf := func(key string, v map[string]any) {
		if v != nil {
			partial[key] = v
		}
	}
	setIf(KeyRules, opts.Rules)
	setIf(KeyLanguageOptions, opts.LanguageOptions)
	setIf(KeyLinterOptions, opts.LinterOptions)
	setIf(KeySettings, opts.Settings)
	if opts.Files != nil {
		partial[optFiles] = toAny(opts.Files)
	}
	if opts.Ignores != nil {
		partial[optIgnores] = toAny(opts.Ignores)
	}
	if opts.IgnoreFiles != nil {
		partial[optIgnoreFiles] = toAny(opts.IgnoreFiles)
	}
	if opts.Strict {
		partial[optStrict] = true
	}

	merged := m.Merge(defaults, partial)

	ro := ResolvedOptions{
		Files:       toStrings(merged[optFiles]),
		Ignores:     toStrings(merged[optIgnores]),
		IgnoreFiles: toStrings(merged[optIgnoreFiles]),
		Rest:        Fragment{},
	}
	ro.Strict, _ = merged[optStrict].(bool)

	for k, v := range merged {
		switch k {
		case optFiles, optIgnores, optIgnoreFiles, optStrict:
			continue
		}
		ro.Rest[k] = v
	}
	return ro
}
