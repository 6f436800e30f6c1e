package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMarker(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"off", "off", true},
		{"warn", "warn", true},
		{"error", "error", true},
		{"int zero", 0, true},
		{"int two", 2, true},
		{"float from json", float64(1), true},
		{"uint8", uint8(2), true},
		{"int out of range", 3, false},
		{"negative", -1, false},
		{"fractional", 1.5, false},
		{"uppercase not a marker", "ERROR", false},
		{"other string", "single", false},
		{"nil", nil, false},
		{"bool", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMarker(tt.v))
		})
	}
}

func TestIsTuple(t *testing.T) {
	assert.True(t, IsTuple([]any{2, map[string]any{"a": 1}}))
	assert.True(t, IsTuple([]any{"warn"}))
	assert.False(t, IsTuple([]any{}))
	assert.False(t, IsTuple([]any{"a", "b"}))
	assert.False(t, IsTuple(nil))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		setting any
		want    Level
		wantOK  bool
	}{
		{"scalar string", "warn", Warn, true},
		{"scalar number", 2, Error, true},
		{"tuple", []any{"error", "single"}, Error, true},
		{"numeric tuple", []any{0}, Off, true},
		{"plain array", []any{"single"}, 0, false},
		{"map", map[string]any{"x": 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.setting)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("Error")
	require.NoError(t, err)
	assert.Equal(t, Error, l)

	l, err = ParseLevel(" 1 ")
	require.NoError(t, err)
	assert.Equal(t, Warn, l)

	_, err = ParseLevel("fatal")
	assert.Error(t, err)
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "off", Off.String())
	assert.Equal(t, "warn", Warn.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "Level(7)", Level(7).String())
}
