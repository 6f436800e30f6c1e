package flatconfig

import (
	"fmt"
	"sort"

	"github.com/dkoosis/flatconf/pkg/merge"
	"github.com/dkoosis/flatconf/pkg/severity"
)

// Well-known fragment keys.
const (
	KeyName            = "name"
	KeyFiles           = "files"
	KeyIgnores         = "ignores"
	KeyRules           = "rules"
	KeyLanguageOptions = "languageOptions"
	KeyLinterOptions   = "linterOptions"
	KeySettings        = "settings"
	KeyPlugins         = "plugins"
)

// Fragment is one unit of declarative lint configuration.
type Fragment map[string]any

// Clone returns a deep copy of f. See [merge.Clone] for how nested values
// are normalized.
func (f Fragment) Clone() Fragment {
	if f == nil {
		return nil
	}
	return Fragment(merge.Clone(map[string]any(f)).(map[string]any))
}

// Name returns the fragment's "name" field, or "" when unset.
func (f Fragment) Name() string {
	s, _ := f[KeyName].(string)
	return s
}

// HasFiles reports whether the fragment declares a "files" key, even if its
// value is empty.
func (f Fragment) HasFiles() bool {
	_, ok := f[KeyFiles]
	return ok
}

// Files returns the fragment's file globs.
func (f Fragment) Files() []string {
	return toStrings(f[KeyFiles])
}

// Ignores returns the fragment's ignore globs.
func (f Fragment) Ignores() []string {
	return toStrings(f[KeyIgnores])
}

// Rules returns the fragment's rule settings, or nil.
func (f Fragment) Rules() map[string]any {
	switch r := f[KeyRules].(type) {
	case map[string]any:
		return r
	case Fragment:
		return r
	}
	return nil
}

// RuleLevel returns the severity configured for rule, if any.
func (f Fragment) RuleLevel(rule string) (severity.Level, bool) {
	setting, ok := f.Rules()[rule]
	if !ok {
		return 0, false
	}
	return severity.Parse(setting)
}

// RuleNames returns the configured rule names in sorted order.
func (f Fragment) RuleNames() []string {
	rules := f.Rules()
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toStrings(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), x...)
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := e.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(e))
		}
		return out
	case string:
		return []string{x}
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
