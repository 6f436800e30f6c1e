// Package severity recognizes rule severity values in lint configuration.
//
// A rule is configured either with a scalar marker ("off", "warn", "error",
// or the numeric forms 0, 1, 2) or with a tuple whose first element is such a
// marker and whose remaining elements are rule options:
//
//	"no-console": "warn"
//	"quotes":     ["error", "single"]
package severity

import (
	"fmt"
	"math"
	"strings"
)

// Level is the normalized severity of a rule.
type Level int

const (
	Off   Level = 0
	Warn  Level = 1
	Error Level = 2
)

// String returns the canonical string marker for the level.
func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// IsMarker reports whether v is one of the fixed severity markers.
// Numeric markers are accepted in any Go integer or float kind, since
// decoders disagree on how they represent numbers.
func IsMarker(v any) bool {
	_, ok := markerLevel(v)
	return ok
}

// IsTuple reports whether v is a non-empty slice whose first element is a
// severity marker.
func IsTuple(v []any) bool {
	return len(v) > 0 && IsMarker(v[0])
}

// Parse extracts the level from a rule setting, which may be a scalar marker
// or a tuple. ok is false when the setting is not a recognizable severity.
func Parse(setting any) (level Level, ok bool) {
	if s, isSlice := setting.([]any); isSlice {
		if !IsTuple(s) {
			return 0, false
		}
		return markerLevel(s[0])
	}
	return markerLevel(setting)
}

// ParseLevel parses a level name such as "warn" (case-insensitive) or a
// numeric string such as "1".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return Off, nil
	case "warn", "1":
		return Warn, nil
	case "error", "2":
		return Error, nil
	}
	return 0, fmt.Errorf("unknown severity %q (expected off, warn, error)", s)
}

func markerLevel(v any) (Level, bool) {
	switch x := v.(type) {
	case string:
		switch x {
		case "off":
			return Off, true
		case "warn":
			return Warn, true
		case "error":
			return Error, true
		}
		return 0, false
	case int:
		return intLevel(int64(x))
	case int8:
		return intLevel(int64(x))
	case int16:
		return intLevel(int64(x))
	case int32:
		return intLevel(int64(x))
	case int64:
		return intLevel(x)
	case uint:
		return uintLevel(uint64(x))
	case uint8:
		return uintLevel(uint64(x))
	case uint16:
		return uintLevel(uint64(x))
	case uint32:
		return uintLevel(uint64(x))
	case uint64:
		return uintLevel(x)
	case float32:
		return floatLevel(float64(x))
	case float64:
		return floatLevel(x)
	}
	return 0, false
}

func intLevel(n int64) (Level, bool) {
	if n < 0 || n > 2 {
		return 0, false
	}
	return Level(n), true
}

func uintLevel(n uint64) (Level, bool) {
	if n > 2 {
		return 0, false
	}
	return Level(n), true
}

func floatLevel(f float64) (Level, bool) {
	if f != math.Trunc(f) {
		return 0, false
	}
	return intLevel(int64(f))
}
