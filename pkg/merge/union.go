package merge

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"unicode/utf16"
)

// Union returns the elements of a followed by b, sorted by their string form
// and with duplicates removed. Strings sort by their own value; other
// elements sort by their JSON encoding. Keys compare by UTF-16 code units,
// the order JavaScript's default sort uses. Elements with equal sort keys
// keep their relative order.
func Union(a, b []any) []any {
	all := make([]any, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)

	keys := make([][]uint16, len(all))
	for i, v := range all {
		keys[i] = utf16.Encode([]rune(sortKey(v)))
	}
	idx := make([]int, len(all))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return slices.Compare(keys[idx[i]], keys[idx[j]]) < 0 })

	seen := make(map[string]struct{}, len(all))
	out := make([]any, 0, len(all))
	for _, i := range idx {
		id := identity(all[i])
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, all[i])
	}
	return out
}

func sortKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return encode(v)
}

// identity distinguishes the string "1" from the number 1.
func identity(v any) string {
	return encode(v)
}

func encode(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}
