package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, JSON: true})

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Output: &buf, JSON: true})

	l.Debug().Msg("trace")

	assert.Contains(t, buf.String(), "trace")
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "chatty", Output: &buf, JSON: true})

	l.Info().Msg("hidden")

	assert.Empty(t, buf.String())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := WithComponent(New(Config{Output: &buf, JSON: true}), "gitignore")

	l.Warn().Str(FieldPath, ".gitignore").Msg("skipped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "gitignore", entry[FieldComponent])
	assert.Equal(t, ".gitignore", entry[FieldPath])
	assert.Equal(t, "skipped", entry["message"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})
	l.Warn().Msg("plain")

	assert.Contains(t, buf.String(), "plain")
	assert.Contains(t, buf.String(), "WRN")
}
