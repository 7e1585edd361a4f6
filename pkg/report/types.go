package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Type is the closed set of report kinds.
type Type int

const (
	Executive Type = iota
	Detailed
	Technical
	Summary
)

func (t Type) String() string {
	switch t {
	case Executive:
		return "executive"
	case Detailed:
		return "detailed"
	case Technical:
		return "technical"
	case Summary:
		return "summary"
	default:
		return "detailed"
	}
}

// ParseType maps a report-type name to its Type. The second return value
// reports whether the name was recognized.
func ParseType(s string) (Type, bool) {
	switch s {
	case "executive":
		return Executive, true
	case "detailed":
		return Detailed, true
	case "technical":
		return Technical, true
	case "summary":
		return Summary, true
	default:
		return Detailed, false
	}
}

// TypeNames lists the report-type names in their canonical order.
func TypeNames() []string {
	return []string{"executive", "detailed", "technical", "summary"}
}

func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseType(s)
	if !ok {
		return fmt.Errorf("unknown report type %q", s)
	}
	*t = parsed
	return nil
}

// Field is one key/value pair of a report section.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered mapping. Report sections keep insertion order so the
// text and markdown exports are deterministic; values are strings, nested
// Fields, or slices.
type Fields []Field

// MarshalJSON emits Fields as a JSON object in insertion order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into Fields, preserving key order.
// Nested objects become nested Fields so a stored report re-exports the same
// way it was written.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object for Fields, got %v", tok)
	}

	out := Fields{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := decodeValue(raw)
		if err != nil {
			return err
		}
		out = append(out, Field{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = out
	return nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var nested Fields
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, err
		}
		return nested, nil
	case '[':
		var rawItems []json.RawMessage
		if err := json.Unmarshal(raw, &rawItems); err != nil {
			return nil, err
		}
		items := make([]any, 0, len(rawItems))
		for _, item := range rawItems {
			value, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	default:
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, err
		}
		return value, nil
	}
}

// Get returns the value stored under key, or nil.
func (f Fields) Get(key string) any {
	for _, field := range f {
		if field.Key == key {
			return field.Value
		}
	}
	return nil
}

// Keys returns the section names in order.
func (f Fields) Keys() []string {
	keys := make([]string, len(f))
	for i, field := range f {
		keys[i] = field.Key
	}
	return keys
}

type Metadata struct {
	Topic           string    `json:"topic"`
	Type            Type      `json:"report_type"`
	GeneratedAt     time.Time `json:"generation_timestamp"`
	SourcesAnalyzed int       `json:"total_sources_analyzed"`
	Confidence      float64   `json:"categorization_confidence"`
}

// Report is the final structured output of a pipeline run.
type Report struct {
	Metadata   Metadata `json:"metadata"`
	Content    Fields   `json:"content"`
	Appendices Fields   `json:"appendices"`
}
