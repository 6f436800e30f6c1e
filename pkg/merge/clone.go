package merge

import (
	"fmt"
	"reflect"
)

// Clone returns a deep copy of v with every slice converted to []any and
// every map converted to map[string]any. Other values (scalars, pointers,
// structs, funcs) are returned as is.
//
// Typed containers such as []string or map[string]string are accepted so
// that fragments built in Go code merge the same way as decoded ones.
func Clone(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string, bool, int, int64, float64:
		return x
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Clone(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Clone(e)
		}
		return out
	case []byte:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Clone(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[mapKey(iter.Key())] = Clone(iter.Value().Interface())
		}
		return out
	}
	return v
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.Kind() == reflect.Interface && !k.IsNil() {
		return mapKey(k.Elem())
	}
	return fmt.Sprint(k.Interface())
}
