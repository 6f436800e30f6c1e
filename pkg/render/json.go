package render

import (
	"encoding/json"

	"github.com/dkoosis/flatconf/pkg/flatconfig"
)

// JSON renders the sequence as the JSON array a linter loads.
type JSON struct {
	indent string
}

// NewJSON creates a JSON renderer with two-space indentation.
func NewJSON() *JSON {
	return &JSON{indent: "  "}
}

// NewCompactJSON creates a JSON renderer without indentation.
func NewCompactJSON() *JSON {
	return &JSON{}
}

// Render formats the fragments as a JSON array. Map keys are sorted, so
// output is deterministic.
func (j *JSON) Render(fragments []flatconfig.Fragment) string {
	if fragments == nil {
		fragments = []flatconfig.Fragment{}
	}

	var data []byte
	var err error
	if j.indent == "" {
		data, err = json.Marshal(fragments)
	} else {
		data, err = json.MarshalIndent(fragments, "", j.indent)
	}
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
