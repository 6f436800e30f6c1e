// Package catalog serves the embedded rule catalogs that the base and
// language-specific fragments are built from.
//
// The catalogs are plain data: rule names grouped into tiers, plus the
// globals each runtime environment provides. Nothing here knows how rules
// behave.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/javascript.yaml
var javascriptYAML []byte

// Base rule-set names, selected by the strictness flag.
const (
	SuffixRecommended = "recommended"
	SuffixAll         = "all"
)

// Global access levels.
const (
	AccessReadonly = "readonly"
	AccessWritable = "writable"
)

// Default environments whose globals the base fragment exposes.
var defaultEnvs = []string{"browser", "es2021", "node"}

// Catalog is the core rule catalog.
type Catalog struct {
	Name  string `yaml:"name"`
	Rules struct {
		Recommended []string `yaml:"recommended"`
		Additional  []string `yaml:"additional"`
	} `yaml:"rules"`
	// Globals maps an environment to its globals and their access:
	// "readonly" or "writable".
	Globals map[string]map[string]string `yaml:"globals"`
}

// ErrDuplicateRule is returned when a rule appears in more than one tier.
var ErrDuplicateRule = errors.New("duplicate rule in catalog")

// ErrGlobalAccess is returned for a global whose access is neither
// readonly nor writable.
var ErrGlobalAccess = errors.New("invalid global access")

// Parse decodes a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("decode catalog: missing name")
	}
	seen := make(map[string]bool)
	for _, r := range append(append([]string(nil), c.Rules.Recommended...), c.Rules.Additional...) {
		if seen[r] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r)
		}
		seen[r] = true
	}
	for env, globals := range c.Globals {
		for name, access := range globals {
			if access != AccessReadonly && access != AccessWritable {
				return nil, fmt.Errorf("%w: %s.%s = %q", ErrGlobalAccess, env, name, access)
			}
		}
	}
	return &c, nil
}

// Default returns the embedded core catalog. It is parsed once.
var Default = sync.OnceValues(func() (*Catalog, error) {
	return Parse(javascriptYAML)
})

// RecommendedRules returns every recommended rule at error level.
func (c *Catalog) RecommendedRules() map[string]any {
	return levelAll("error", c.Rules.Recommended)
}

// AllRules returns every catalogued rule at error level.
func (c *Catalog) AllRules() map[string]any {
	rules := levelAll("error", c.Rules.Recommended)
	for k, v := range levelAll("error", c.Rules.Additional) {
		rules[k] = v
	}
	return rules
}

// RuleNames returns all catalogued rule names, sorted.
func (c *Catalog) RuleNames() []string {
	names := append(append([]string(nil), c.Rules.Recommended...), c.Rules.Additional...)
	sort.Strings(names)
	return names
}

// GlobalsFor returns the globals of the given environments with their
// access. A global listed by several environments takes the access of the
// last one.
func (c *Catalog) GlobalsFor(envs ...string) map[string]any {
	out := make(map[string]any)
	for _, env := range envs {
		for name, access := range c.Globals[env] {
			out[name] = access
		}
	}
	return out
}

// Base returns the base rule-set fragment: the recommended rules, or every
// rule when strict is set, with module-mode language options and the
// browser, es2021 and node globals.
func (c *Catalog) Base(strict bool) map[string]any {
	suffix := SuffixRecommended
	rules := c.RecommendedRules()
	if strict {
		suffix = SuffixAll
		rules = c.AllRules()
	}

	globals := c.GlobalsFor(defaultEnvs...)
	globals["document"] = AccessReadonly
	globals["navigator"] = AccessReadonly
	globals["window"] = AccessReadonly

	return map[string]any{
		"name": c.Name + "/" + suffix,
		"languageOptions": map[string]any{
			"ecmaVersion": 2022,
			"globals":     globals,
			"parserOptions": map[string]any{
				"ecmaFeatures": map[string]any{"jsx": true},
				"ecmaVersion":  2022,
				"sourceType":   "module",
			},
			"sourceType": "module",
		},
		"linterOptions": map[string]any{
			"reportUnusedDisableDirectives": true,
		},
		"rules": rules,
	}
}

func levelAll(level string, names []string) map[string]any {
	out := make(map[string]any, len(names))
	for _, n := range names {
		out[n] = level
	}
	return out
}
