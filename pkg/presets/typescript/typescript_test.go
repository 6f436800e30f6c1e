package typescript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/flatconf/pkg/catalog"
	"github.com/dkoosis/flatconf/pkg/flatconfig"
)

func compose(t *testing.T, opts Options) []flatconfig.Fragment {
	t.Helper()
	entries, err := Entries(opts)
	require.NoError(t, err)

	c := flatconfig.New(flatconfig.WithIgnoreSource(flatconfig.IgnoreSourceFunc(
		func(context.Context, []string) (flatconfig.Fragment, error) { return flatconfig.Fragment{}, nil },
	)))
	out, err := c.Compose(context.Background(), flatconfig.Options{}, entries...)
	require.NoError(t, err)
	return out[2:]
}

func TestPresetName(t *testing.T) {
	tests := []struct {
		opts Options
		want string
	}{
		{Options{}, catalog.PresetRecommended},
		{Options{TypeChecked: TypeCheckEssential}, catalog.PresetRecommended},
		{Options{TypeChecked: TypeCheckFull}, catalog.PresetRecommendedTypeChecked},
		{Options{Strict: true}, catalog.PresetStrict},
		{Options{Strict: true, TypeChecked: TypeCheckEssential}, catalog.PresetStrict},
		{Options{Strict: true, TypeChecked: TypeCheckFull}, catalog.PresetStrictTypeChecked},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PresetName(tt.opts))
		})
	}
}

func TestParseTypeCheck(t *testing.T) {
	for in, want := range map[string]TypeCheck{
		"":          TypeCheckOff,
		"false":     TypeCheckOff,
		"Essential": TypeCheckEssential,
		"true":      TypeCheckFull,
		"full":      TypeCheckFull,
	} {
		got, err := ParseTypeCheck(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTypeCheck("partial")
	assert.Error(t, err)
}

func TestEntries_Recommended(t *testing.T) {
	out := compose(t, Options{})

	require.Len(t, out, 3, "disable-type-checked producer contributes nothing")

	base := out[0]
	assert.Equal(t, "typescript-eslint/base", base.Name())
	assert.Equal(t, []string{flatconfig.GlobSrc}, base.Files())

	preset := out[1]
	assert.Equal(t, "typescript-eslint/recommended", preset.Name())
	assert.Equal(t, []string{"**/*.ts", "**/*.tsx", "**/*.mts", "**/*.cts"}, preset.Files())
	assert.Equal(t, "off", preset.Rules()["no-undef"])
	assert.Equal(t, "error", preset.Rules()["@typescript-eslint/no-explicit-any"])
	assert.NotContains(t, preset["languageOptions"], "parserOptions")

	custom := out[2]
	assert.Equal(t, "typescript-eslint/custom", custom.Name())
	assert.Equal(t, flatconfig.DefaultGlobTSSrc(), custom.Files())
	assert.Equal(t, "off", custom.Rules()["@typescript-eslint/ban-ts-comment"])
	assert.Equal(t, []any{"error", "property"}, custom.Rules()["@typescript-eslint/method-signature-style"])
	assert.NotContains(t, custom.Rules(), "@typescript-eslint/no-floating-promises")
}

func TestEntries_StrictOverridesCustomRules(t *testing.T) {
	out := compose(t, Options{Strict: true})

	custom := out[2]
	assert.Equal(t, "error", custom.Rules()["@typescript-eslint/ban-ts-comment"])
	assert.Equal(t, "off", custom.Rules()["@typescript-eslint/no-non-null-assertion"])
	assert.Equal(t, "typescript-eslint/strict", out[1].Name())
}

func TestEntries_TypeChecked(t *testing.T) {
	t.Run("essential", func(t *testing.T) {
		out := compose(t, Options{TypeChecked: TypeCheckEssential, ProjectService: true})

		po := out[1]["languageOptions"].(map[string]any)["parserOptions"].(map[string]any)
		assert.Equal(t, true, po["projectService"])
		assert.NotContains(t, po, "project")

		rules := out[2].Rules()
		assert.Equal(t, "error", rules["@typescript-eslint/no-floating-promises"])
		assert.Equal(t, misusedPromises, rules["@typescript-eslint/no-misused-promises"])
		assert.NotContains(t, rules, "@typescript-eslint/consistent-type-exports")
	})

	t.Run("full", func(t *testing.T) {
		out := compose(t, Options{
			TypeChecked:     TypeCheckFull,
			Project:         []string{"./tsconfig.json"},
			TsconfigRootDir: "/repo",
		})

		preset := out[1]
		assert.Equal(t, "typescript-eslint/recommended-type-checked", preset.Name())
		po := preset["languageOptions"].(map[string]any)["parserOptions"].(map[string]any)
		assert.Equal(t, []any{"./tsconfig.json"}, po["project"])
		assert.Equal(t, "/repo", po["tsconfigRootDir"])
		assert.Equal(t, "@typescript-eslint/parser", preset["languageOptions"].(map[string]any)["parser"])

		rules := out[2].Rules()
		assert.Equal(t, "error", rules["@typescript-eslint/consistent-type-exports"])
		assert.Equal(t, []any{"error", map[string]any{}}, rules["@typescript-eslint/restrict-template-expressions"])
	})
}

func TestEntries_DisableTypeChecking(t *testing.T) {
	out := compose(t, Options{
		TypeChecked:              TypeCheckFull,
		FilesDisableTypeChecking: []string{"**/*.js"},
	})

	require.Len(t, out, 4)
	last := out[3]
	assert.Equal(t, "typescript-eslint/disable-type-checked", last.Name())
	assert.Equal(t, []string{"**/*.js"}, last.Files())
	assert.Equal(t, "off", last.Rules()["@typescript-eslint/await-thenable"])
}

func TestEntries_CustomCatalog(t *testing.T) {
	ts, err := catalog.ParseTypeScript([]byte("name: tsx\nplugin: \"@tsx\"\nparser: tsx-parser\n"))
	require.NoError(t, err)

	out := compose(t, Options{Catalog: ts})

	assert.Equal(t, "tsx/base", out[0].Name())
	assert.Equal(t, "off", out[2].Rules()["@tsx/ban-ts-comment"])
}
