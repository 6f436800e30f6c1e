package source

import "encoding/json"

// Format represents a recognized fragment file format.
type Format int

const (
	Unknown Format = iota
	JSON           // a single JSON document
	YAML           // one or more YAML documents
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	}
	return "unknown"
}

// Sniff examines data to determine its format. JSON is recognized only when
// the whole input is a valid JSON object or array; everything else that is
// not blank is treated as YAML.
func Sniff(data []byte) Format {
	data = trimSpace(data)
	if len(data) == 0 {
		return Unknown
	}

	// YAML flow mappings also start with '{', so require valid JSON.
	if (data[0] == '{' || data[0] == '[') && json.Valid(data) {
		return JSON
	}
	return YAML
}

func trimSpace(data []byte) []byte {
	for len(data) > 0 && isSpace(data[0]) {
		data = data[1:]
	}
	for len(data) > 0 && isSpace(data[len(data)-1]) {
		data = data[:len(data)-1]
	}
	return data
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
