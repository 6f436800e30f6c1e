package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/typescript.yaml
var typescriptYAML []byte

// TypeScript preset names.
const (
	PresetRecommended            = "recommended"
	PresetStrict                 = "strict"
	PresetRecommendedTypeChecked = "recommended-type-checked"
	PresetStrictTypeChecked      = "strict-type-checked"
)

// TypeScript is the TypeScript plugin catalog.
type TypeScript struct {
	Name   string   `yaml:"name"`
	Plugin string   `yaml:"plugin"`
	Parser string   `yaml:"parser"`
	Files  []string `yaml:"files"`

	ESLintRecommended struct {
		Off   []string `yaml:"off"`
		Error []string `yaml:"error"`
	} `yaml:"eslintRecommended"`

	ExtensionRules []string `yaml:"extensionRules"`

	Tiers struct {
		Recommended            []string `yaml:"recommended"`
		Strict                 []string `yaml:"strict"`
		RecommendedTypeChecked []string `yaml:"recommendedTypeChecked"`
		StrictTypeChecked      []string `yaml:"strictTypeChecked"`
	} `yaml:"tiers"`
}

// ParseTypeScript decodes a TypeScript catalog from YAML.
func ParseTypeScript(data []byte) (*TypeScript, error) {
	var t TypeScript
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode typescript catalog: %w", err)
	}
	if t.Name == "" || t.Plugin == "" {
		return nil, fmt.Errorf("decode typescript catalog: missing name or plugin")
	}
	return &t, nil
}

// DefaultTypeScript returns the embedded TypeScript catalog.
var DefaultTypeScript = sync.OnceValues(func() (*TypeScript, error) {
	return ParseTypeScript(typescriptYAML)
})

// RuleName returns the plugin-qualified name of rule.
func (t *TypeScript) RuleName(rule string) string {
	return t.Plugin + "/" + rule
}

// BaseFragment registers the parser and plugin without enabling rules.
func (t *TypeScript) BaseFragment() map[string]any {
	return map[string]any{
		"name": t.Name + "/base",
		"languageOptions": map[string]any{
			"parser":     t.Parser,
			"sourceType": "module",
		},
		"plugins": map[string]any{
			t.Plugin: t.Plugin,
		},
	}
}

// ESLintRecommendedFragment adjusts core rules for TypeScript files.
func (t *TypeScript) ESLintRecommendedFragment() map[string]any {
	rules := levelAll("off", t.ESLintRecommended.Off)
	for k, v := range levelAll("error", t.ESLintRecommended.Error) {
		rules[k] = v
	}
	return map[string]any{
		"name":  t.Name + "/eslint-recommended",
		"files": toAnySlice(t.Files),
		"rules": rules,
	}
}

// Preset returns the fragments of a named preset: base, eslint-recommended
// and the preset's rules.
func (t *TypeScript) Preset(name string) ([]map[string]any, error) {
	var tiers [][]string
	switch name {
	case PresetRecommended:
		tiers = [][]string{t.Tiers.Recommended}
	case PresetStrict:
		tiers = [][]string{t.Tiers.Recommended, t.Tiers.Strict}
	case PresetRecommendedTypeChecked:
		tiers = [][]string{t.Tiers.Recommended, t.Tiers.RecommendedTypeChecked}
	case PresetStrictTypeChecked:
		tiers = [][]string{t.Tiers.Recommended, t.Tiers.Strict, t.Tiers.RecommendedTypeChecked, t.Tiers.StrictTypeChecked}
	default:
		return nil, fmt.Errorf("unknown typescript preset %q", name)
	}

	extension := make(map[string]bool, len(t.ExtensionRules))
	for _, r := range t.ExtensionRules {
		extension[r] = true
	}

	rules := make(map[string]any)
	for _, tier := range tiers {
		for _, r := range tier {
			rules[t.RuleName(r)] = "error"
			if extension[r] {
				rules[r] = "off"
			}
		}
	}

	return []map[string]any{
		t.BaseFragment(),
		t.ESLintRecommendedFragment(),
		{
			"name":  t.Name + "/" + name,
			"rules": rules,
		},
	}, nil
}

// DisableTypeChecked turns off every rule that needs type information and
// detaches the type-checking program.
func (t *TypeScript) DisableTypeChecked() map[string]any {
	rules := make(map[string]any)
	for _, tier := range [][]string{t.Tiers.RecommendedTypeChecked, t.Tiers.StrictTypeChecked} {
		for _, r := range tier {
			rules[t.RuleName(r)] = "off"
		}
	}
	return map[string]any{
		"name": t.Name + "/disable-type-checked",
		"languageOptions": map[string]any{
			"parserOptions": map[string]any{
				"project":        false,
				"projectService": false,
			},
		},
		"rules": rules,
	}
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
