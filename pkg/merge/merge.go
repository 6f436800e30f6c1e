// Package merge implements the deep merge used to combine lint configuration
// fragments.
//
// Merging is right-biased: among the layers passed to [Merger.Merge], later
// layers override earlier ones. For each key present on both sides:
//
//   - two severity tuples: the later tuple replaces the earlier one outright
//   - two slices otherwise: sorted, de-duplicated union
//   - two maps: merged recursively with the same rules
//   - anything else: the later value wins
//
// A nil value in a later layer leaves the earlier value in place. Inputs are
// never modified; the result shares no maps or slices with them.
package merge

import "github.com/dkoosis/flatconf/pkg/severity"

// TuplePredicate reports whether a slice should be treated as an atomic tuple
// that replaces, rather than unions with, another tuple.
type TuplePredicate func(v []any) bool

// Merger merges configuration maps. The zero value is not usable; call [New].
type Merger struct {
	isTuple TuplePredicate
}

// Option configures a Merger.
type Option func(*Merger)

// WithTuplePredicate sets the predicate that recognizes replace-not-union
// tuples. The default is [severity.IsTuple].
func WithTuplePredicate(p TuplePredicate) Option {
	return func(m *Merger) {
		if p != nil {
			m.isTuple = p
		}
	}
}

// New returns a Merger configured with opts.
func New(opts ...Option) *Merger {
	m := &Merger{isTuple: severity.IsTuple}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMerger = New()

// Merge merges layers with the default severity-aware Merger.
func Merge(layers ...map[string]any) map[string]any {
	return defaultMerger.Merge(layers...)
}

// Merge combines layers left to right; later layers take precedence.
// Nil layers are skipped. The result is always a non-nil map.
func (m *Merger) Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		out = m.mergeMaps(out, Clone(layer).(map[string]any))
	}
	return out
}

// mergeMaps merges over into base. Both arguments must already be owned by
// the caller (cloned); base is updated in place and returned.
func (m *Merger) mergeMaps(base, over map[string]any) map[string]any {
	for k, v := range over {
		if v == nil {
			continue
		}
		existing, ok := base[k]
		if !ok || existing == nil {
			base[k] = v
			continue
		}
		base[k] = m.mergeValue(existing, v)
	}
	return base
}

func (m *Merger) mergeValue(base, over any) any {
	if bs, ok := base.([]any); ok {
		if os, ok := over.([]any); ok {
			if m.isTuple(bs) && m.isTuple(os) {
				return os
			}
			return Union(bs, os)
		}
	}
	if bm, ok := base.(map[string]any); ok {
		if om, ok := over.(map[string]any); ok {
			return m.mergeMaps(bm, om)
		}
	}
	return over
}
