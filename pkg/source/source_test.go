package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/flatconf/pkg/flatconfig"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want flatconfig.Entry
	}{
		{"empty", "", flatconfig.Absent{}},
		{"null", "null\n", flatconfig.Absent{}},
		{"false", "false", flatconfig.Absent{}},
		{
			name: "yaml mapping",
			data: "name: app\nrules:\n  no-console: warn\n  quotes: [error, single]\n",
			want: flatconfig.Single{Fragment: flatconfig.Fragment{
				"name": "app",
				"rules": map[string]any{
					"no-console": "warn",
					"quotes":     []any{"error", "single"},
				},
			}},
		},
		{
			name: "json mapping",
			data: `{"rules":{"eqeqeq":2}}`,
			want: flatconfig.Single{Fragment: flatconfig.Fragment{
				"rules": map[string]any{"eqeqeq": float64(2)},
			}},
		},
		{
			name: "json sequence",
			data: `[{"name":"a"},null,{"name":"b"}]`,
			want: flatconfig.Many{Fragments: []flatconfig.Fragment{{"name": "a"}, nil, {"name": "b"}}},
		},
		{
			name: "yaml documents",
			data: "name: a\n---\n- name: b\n- name: c\n---\nnull\n",
			want: flatconfig.Many{Fragments: []flatconfig.Fragment{{"name": "a"}, {"name": "b"}, {"name": "c"}}},
		},
		{
			name: "non-string keys",
			data: "settings:\n  1: one\n",
			want: flatconfig.Single{Fragment: flatconfig.Fragment{
				"settings": map[string]any{"1": "one"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"scalar", "just a string"},
		{"true", "true"},
		{"sequence of scalars", "[1, 2]"},
		{"malformed yaml", "rules: [unterminated"},
		{"bad second document", "name: a\n---\n42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParse_NotFragmentSentinel(t *testing.T) {
	_, err := Parse([]byte(`"rules"`))
	assert.ErrorIs(t, err, ErrNotFragment)
}

func TestRead(t *testing.T) {
	e, err := Read(strings.NewReader("name: stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, flatconfig.Of(flatconfig.Fragment{"name": "stdin"}), e)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "name: a\n")
	b := writeFile(t, dir, "b.json", `[{"name":"b"}]`)

	entries, err := LoadAll([]string{a, b})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, flatconfig.Of(flatconfig.Fragment{"name": "a"}), entries[0])
	assert.Equal(t, flatconfig.All(flatconfig.Fragment{"name": "b"}), entries[1])
}

func TestLoadAll_JoinsErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "42\n")
	missing := filepath.Join(dir, "missing.yaml")

	entries, err := LoadAll([]string{bad, missing})

	assert.Nil(t, entries)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFragment)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLazy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.yaml")
	e := Lazy(path)

	// Written after the entry is built; read at resolution time.
	writeFile(t, dir, "late.yaml", "rules:\n  semi: error\n")

	f, err := flatconfig.New().Resolve(context.Background(), e, []string{"**/*.js"})
	require.NoError(t, err)
	assert.Equal(t, "error", f.Rules()["semi"])
	assert.Equal(t, []string{"**/*.js"}, f.Files())
}

func TestLazy_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := flatconfig.New().Resolve(ctx, Lazy("unused.yaml"), nil)

	assert.True(t, errors.Is(err, context.Canceled))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
