package offer

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is a display value decoded leniently from JSON. Strings are kept as-is,
// numbers and booleans keep their literal text, null becomes empty and nested
// values keep their compact JSON text.
type Field string

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*f = Field(buf.String())
	default:
		*f = Field(data)
	}
	return nil
}

// Display returns the trimmed value, or Placeholder when it is empty.
func (f Field) Display() string {
	if s := strings.TrimSpace(string(f)); s != "" {
		return s
	}
	return Placeholder
}
