// Package source loads configuration fragments from YAML or JSON files and
// turns them into composer entries.
//
// A document holding a mapping becomes a Single entry, a sequence of
// mappings becomes a Many entry, and an empty, null or false document
// contributes nothing. A YAML file with several documents yields a Many
// entry of all of them, in file order.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/flatconf/pkg/flatconfig"
	"github.com/dkoosis/flatconf/pkg/merge"
)

// ErrNotFragment is returned when a document is neither a mapping nor a
// sequence of mappings.
var ErrNotFragment = errors.New("document is not a config fragment")

// Parse decodes data into an entry.
func Parse(data []byte) (flatconfig.Entry, error) {
	switch Sniff(data) {
	case Unknown:
		return flatconfig.None(), nil
	case JSON:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return toEntry(v)
	}

	docs, err := decodeYAML(data)
	if err != nil {
		return nil, err
	}
	switch len(docs) {
	case 0:
		return flatconfig.None(), nil
	case 1:
		return toEntry(docs[0])
	}

	var frags []flatconfig.Fragment
	for i, doc := range docs {
		e, err := toEntry(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		switch v := e.(type) {
		case flatconfig.Single:
			frags = append(frags, v.Fragment)
		case flatconfig.Many:
			frags = append(frags, v.Fragments...)
		}
	}
	if len(frags) == 0 {
		return flatconfig.None(), nil
	}
	return flatconfig.All(frags...), nil
}

// Read parses everything r yields.
func Read(r io.Reader) (flatconfig.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fragment: %w", err)
	}
	return Parse(data)
}

// Load reads and parses the file at path.
func Load(path string) (flatconfig.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fragment: %w", err)
	}
	e, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// LoadAll loads every path. All failures are reported together; on any
// failure no entries are returned.
func LoadAll(paths []string) ([]flatconfig.Entry, error) {
	entries := make([]flatconfig.Entry, 0, len(paths))
	var errs []error
	for _, p := range paths {
		e, err := Load(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return entries, nil
}

// Lazy returns a producer that loads path when the composer resolves it.
func Lazy(path string) flatconfig.Entry {
	return flatconfig.From(func(ctx context.Context) (flatconfig.Entry, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Load(path)
	})
}

func decodeYAML(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []any
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		docs = append(docs, v)
	}
}

func toEntry(v any) (flatconfig.Entry, error) {
	switch x := v.(type) {
	case nil:
		return flatconfig.None(), nil
	case bool:
		if !x {
			return flatconfig.None(), nil
		}
	case map[string]any, map[any]any:
		return flatconfig.Of(toFragment(x)), nil
	case []any:
		frags := make([]flatconfig.Fragment, 0, len(x))
		for i, el := range x {
			switch el.(type) {
			case nil:
				frags = append(frags, nil)
			case map[string]any, map[any]any:
				frags = append(frags, toFragment(el))
			default:
				return nil, fmt.Errorf("element %d: %w (got %T)", i, ErrNotFragment, el)
			}
		}
		return flatconfig.All(frags...), nil
	}
	return nil, fmt.Errorf("%w (got %T)", ErrNotFragment, v)
}

// toFragment normalizes decoded maps, including yaml's map[any]any for
// non-string keys, into a Fragment.
func toFragment(v any) flatconfig.Fragment {
	return flatconfig.Fragment(merge.Clone(v).(map[string]any))
}
