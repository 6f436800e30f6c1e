// Package typescript builds the entries that enable TypeScript linting on
// top of a composed configuration.
package typescript

import (
	"fmt"
	"strings"

	"github.com/dkoosis/flatconf/pkg/catalog"
	"github.com/dkoosis/flatconf/pkg/flatconfig"
)

// TypeCheck selects how much of the type-aware rule set is enabled.
type TypeCheck int

const (
	// TypeCheckOff disables type-aware rules and the type-checking program.
	TypeCheckOff TypeCheck = iota
	// TypeCheckEssential enables the promise-safety rules only.
	TypeCheckEssential
	// TypeCheckFull enables the type-checked preset.
	TypeCheckFull
)

func (t TypeCheck) String() string {
	switch t {
	case TypeCheckOff:
		return "off"
	case TypeCheckEssential:
		return "essential"
	case TypeCheckFull:
		return "full"
	}
	return fmt.Sprintf("TypeCheck(%d)", int(t))
}

// ParseTypeCheck parses "off", "essential" or "full". "false" and "true"
// are accepted as aliases for off and full.
func ParseTypeCheck(s string) (TypeCheck, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "false":
		return TypeCheckOff, nil
	case "essential":
		return TypeCheckEssential, nil
	case "full", "true":
		return TypeCheckFull, nil
	}
	return TypeCheckOff, fmt.Errorf("unknown type-check mode %q (expected off, essential, full)", s)
}

// Options configures the TypeScript entries.
type Options struct {
	Strict      bool
	TypeChecked TypeCheck

	// Parser options passed through when type checking is on.
	Project         []string
	ProjectService  bool
	TsconfigRootDir string

	// FilesDisableTypeChecking lists globs that are linted without type
	// information, such as plain JavaScript config files.
	FilesDisableTypeChecking []string

	// Catalog overrides the embedded TypeScript catalog.
	Catalog *catalog.TypeScript
}

const customName = "typescript-eslint/custom"

// misusedPromises allows promise-returning callbacks in arguments and JSX
// attributes.
var misusedPromises = []any{
	"error",
	map[string]any{
		"checksVoidReturn": map[string]any{"arguments": false, "attributes": false},
	},
}

// PresetName returns the catalog preset selected by opts.
func PresetName(opts Options) string {
	switch {
	case opts.Strict && opts.TypeChecked == TypeCheckFull:
		return catalog.PresetStrictTypeChecked
	case opts.Strict:
		return catalog.PresetStrict
	case opts.TypeChecked == TypeCheckFull:
		return catalog.PresetRecommendedTypeChecked
	}
	return catalog.PresetRecommended
}

// Entries returns, in order: the parser and plugin registration, the
// selected preset merged into one fragment, the project's own rule
// adjustments scoped to TypeScript sources, and a producer that switches
// type checking off for FilesDisableTypeChecking.
//
// Within each Many entry the more specific fragment comes first, since
// earlier fragments win.
func Entries(opts Options) ([]flatconfig.Entry, error) {
	ts := opts.Catalog
	if ts == nil {
		var err error
		if ts, err = catalog.DefaultTypeScript(); err != nil {
			return nil, err
		}
	}

	preset, err := ts.Preset(PresetName(opts))
	if err != nil {
		return nil, err
	}

	// Reversed so the preset's rules fragment names the merged result.
	presetFrags := []flatconfig.Fragment{
		flatconfig.Maybe(opts.TypeChecked != TypeCheckOff, parserOptions(opts)),
	}
	for i := len(preset) - 1; i >= 0; i-- {
		presetFrags = append(presetFrags, flatconfig.Fragment(preset[i]))
	}

	custom := []flatconfig.Fragment{
		typeCheckedRules(ts, opts.TypeChecked),
		flatconfig.Maybe(opts.Strict, flatconfig.Fragment{
			flatconfig.KeyRules: map[string]any{
				ts.RuleName("ban-ts-comment"):        "error",
				ts.RuleName("no-non-null-assertion"): "off",
			},
		}),
		{
			flatconfig.KeyRules: map[string]any{
				"no-use-before-define":                     "off",
				ts.RuleName("ban-ts-comment"):              "off",
				ts.RuleName("consistent-type-imports"):     "error",
				ts.RuleName("no-import-type-side-effects"): "error",
				ts.RuleName("method-signature-style"):      []any{"error", "property"},
			},
		},
		{
			flatconfig.KeyName:  customName,
			flatconfig.KeyFiles: toAny(flatconfig.DefaultGlobTSSrc()),
		},
	}

	disable := append([]string(nil), opts.FilesDisableTypeChecking...)

	return []flatconfig.Entry{
		flatconfig.Of(ts.BaseFragment()),
		flatconfig.All(presetFrags...),
		flatconfig.All(custom...),
		flatconfig.Lazy(func() flatconfig.Entry {
			if len(disable) == 0 {
				return flatconfig.None()
			}
			f := flatconfig.Fragment(ts.DisableTypeChecked())
			f[flatconfig.KeyFiles] = toAny(disable)
			return flatconfig.Of(f)
		}),
	}, nil
}

func parserOptions(opts Options) flatconfig.Fragment {
	po := map[string]any{"projectService": opts.ProjectService}
	if len(opts.Project) > 0 {
		po["project"] = toAny(opts.Project)
	}
	if opts.TsconfigRootDir != "" {
		po["tsconfigRootDir"] = opts.TsconfigRootDir
	}
	return flatconfig.Fragment{
		flatconfig.KeyLanguageOptions: map[string]any{"parserOptions": po},
	}
}

func typeCheckedRules(ts *catalog.TypeScript, mode TypeCheck) flatconfig.Fragment {
	switch mode {
	case TypeCheckEssential:
		return flatconfig.Fragment{flatconfig.KeyRules: map[string]any{
			ts.RuleName("await-thenable"):       "error",
			ts.RuleName("no-floating-promises"): "error",
			ts.RuleName("no-misused-promises"):  misusedPromises,
		}}
	case TypeCheckFull:
		return flatconfig.Fragment{flatconfig.KeyRules: map[string]any{
			ts.RuleName("consistent-type-exports"):       "error",
			ts.RuleName("no-misused-promises"):           misusedPromises,
			ts.RuleName("restrict-template-expressions"): []any{"error", map[string]any{}},
		}}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
