package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Format renders v as a single canonical line for messages and snapshots.
//
// The output is JSON-like: mapping keys sorted, no HTML escaping, strings
// NFC normalized so canonically equivalent strings render the same. Opaque
// scalars render as <type value>. Format is for display; it is not a
// serialization format and is not parsed back.
func Format(v Value) string {
	var buf bytes.Buffer
	writeValue(&buf, normalize(v))
	return buf.String()
}

func writeValue(buf *bytes.Buffer, v Value) {
	switch val := v.(type) {
	case Null:
		buf.WriteString("null")
	case String:
		writeString(buf, string(val))
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case Float:
		buf.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
	case Opaque:
		fmt.Fprintf(buf, "<%T %v>", val.V, val.V)
	case Sequence:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeValue(buf, normalize(elem))
		}
		buf.WriteByte(']')
	case Mapping:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			writeValue(buf, normalize(val[k]))
		}
		buf.WriteByte('}')
	default:
		fmt.Fprintf(buf, "<%T>", v)
	}
}

// writeString writes s as a JSON string literal after NFC normalization.
func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		// Strings always encode; keep a readable fallback anyway.
		buf.WriteString(strconv.Quote(s))
		return
	}
	// json.Encoder appends a newline
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}
