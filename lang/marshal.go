package lang

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// formatNumber renders a float64 in Jack's output form: minimal round-trip
// decimal digits, never scientific notation, always with a fractional part
// so integral values print as e.g. "120.0" rather than "120".
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// MarshalJSON renders a deep-forced value tree as JSON text, honoring
// insertion order for object fields and Jack's number formatting.
func MarshalJSON(v *JSON, indent string) ([]byte, error) {
	var buf bytes.Buffer

	if err := writeJSON(&buf, v, indent, ""); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *JSON, indent, prefix string) error {
	switch v.Kind {
	case ValueNull:
		buf.WriteString("null")
	case ValueBool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case ValueNumber:
		buf.WriteString(formatNumber(v.Number))
	case ValueString:
		s, err := encodeJSONString(v.Str)
		if err != nil {
			return err
		}

		buf.WriteString(s)
	case ValueArray:
		return writeJSONArray(buf, v.Array, indent, prefix)
	case ValueObject:
		return writeJSONObject(buf, v.Object, indent, prefix)
	default:
		return ErrNotSerializable
	}

	return nil
}

func writeJSONArray(buf *bytes.Buffer, elems []*JSON, indent, prefix string) error {
	if len(elems) == 0 {
		buf.WriteString("[]")

		return nil
	}

	nextPrefix := prefix + indent

	buf.WriteByte('[')

	for i, el := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}

		if indent != "" {
			buf.WriteByte('\n')
			buf.WriteString(nextPrefix)
		}

		if err := writeJSON(buf, el, indent, nextPrefix); err != nil {
			return err
		}
	}

	if indent != "" {
		buf.WriteByte('\n')
		buf.WriteString(prefix)
	}

	buf.WriteByte(']')

	return nil
}

func writeJSONObject(buf *bytes.Buffer, entries []JSONEntry, indent, prefix string) error {
	if len(entries) == 0 {
		buf.WriteString("{}")

		return nil
	}

	nextPrefix := prefix + indent

	buf.WriteByte('{')

	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		if indent != "" {
			buf.WriteByte('\n')
			buf.WriteString(nextPrefix)
		}

		key, err := encodeJSONString(e.Key)
		if err != nil {
			return err
		}

		buf.WriteString(key)
		buf.WriteByte(':')

		if indent != "" {
			buf.WriteByte(' ')
		}

		if err := writeJSON(buf, e.Value, indent, nextPrefix); err != nil {
			return err
		}
	}

	if indent != "" {
		buf.WriteByte('\n')
		buf.WriteString(prefix)
	}

	buf.WriteByte('}')

	return nil
}

// encodeJSONString renders s as a JSON string literal using encoding/json's
// escaping rules, with HTML escaping disabled so output matches what a
// reader would expect from a plain JSON encoder.
func encodeJSONString(s string) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ToNative converts a deep-forced value tree to plain Go values suitable
// for yaml.Marshal. Object field order is not preserved in this
// conversion: YAML is Jack's secondary output format and goccy/go-yaml
// marshals map[string]any with its own key ordering.
func ToNative(v *JSON) any {
	switch v.Kind {
	case ValueNull:
		return nil
	case ValueBool:
		return v.Bool
	case ValueNumber:
		return v.Number
	case ValueString:
		return v.Str
	case ValueArray:
		out := make([]any, len(v.Array))
		for i, el := range v.Array {
			out[i] = ToNative(el)
		}

		return out
	case ValueObject:
		out := make(map[string]any, len(v.Object))
		for _, e := range v.Object {
			out[e.Key] = ToNative(e.Value)
		}

		return out
	}

	return nil
}

// MarshalYAML renders a deep-forced value tree as YAML, Jack's secondary
// serialization target alongside JSON.
func MarshalYAML(v *JSON) ([]byte, error) {
	return yaml.Marshal(ToNative(v))
}
