package render

import (
	"sort"

	"github.com/dkoosis/flatconf/pkg/flatconfig"
	"github.com/dkoosis/flatconf/pkg/severity"
)

// FragmentSummary is the per-fragment digest shown by the human-readable
// renderers.
type FragmentSummary struct {
	Index   int
	Name    string
	Files   []string
	Ignores int

	// Rule counts by configured severity. Unrecognized settings count as
	// Other.
	Off, Warn, Error, Other int

	// Keys lists the remaining top-level keys, sorted.
	Keys []string
}

// Rules returns the total number of configured rules.
func (s FragmentSummary) Rules() int {
	return s.Off + s.Warn + s.Error + s.Other
}

// Totals aggregates rule counts across a sequence.
type Totals struct {
	Fragments        int
	Off, Warn, Error int
}

// Summarize digests every fragment in order.
func Summarize(fragments []flatconfig.Fragment) ([]FragmentSummary, Totals) {
	out := make([]FragmentSummary, 0, len(fragments))
	totals := Totals{Fragments: len(fragments)}

	for i, f := range fragments {
		s := FragmentSummary{
			Index:   i,
			Name:    f.Name(),
			Files:   f.Files(),
			Ignores: len(f.Ignores()),
		}
		for _, name := range f.RuleNames() {
			level, ok := f.RuleLevel(name)
			switch {
			case !ok:
				s.Other++
			case level == severity.Off:
				s.Off++
			case level == severity.Warn:
				s.Warn++
			default:
				s.Error++
			}
		}
		for k := range f {
			switch k {
			case flatconfig.KeyName, flatconfig.KeyFiles, flatconfig.KeyIgnores, flatconfig.KeyRules:
				continue
			}
			s.Keys = append(s.Keys, k)
		}
		sort.Strings(s.Keys)

		totals.Off += s.Off
		totals.Warn += s.Warn
		totals.Error += s.Error
		out = append(out, s)
	}
	return out, totals
}
