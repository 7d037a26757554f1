package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// JSON renders v on one line with ", " and ": " separators, keys in insertion
// order and non-ASCII text left unescaped. It is the source text shown in
// prompts and the flow-style YAML fallback. Non-finite floats render as null.
func (v Value) JSON() string {
	var buf bytes.Buffer
	appendJSON(&buf, v, ", ", ": ")

	return buf.String()
}

// MarshalJSON implements json.Marshaler with compact separators.
func (v Value) MarshalJSON() ([]byte, error) {
	if err := checkFinite(v); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	appendJSON(&buf, v, ",", ":")

	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v Value, itemSep, keySep string) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool, KindInt:
		buf.WriteString(v.Text())
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			buf.WriteString("null")
			return
		}

		buf.WriteString(FormatFloat(v.f))
	case KindString:
		appendJSONString(buf, v.s)
	case KindSequence:
		buf.WriteByte('[')

		for i, item := range v.seq {
			if i > 0 {
				buf.WriteString(itemSep)
			}

			appendJSON(buf, item, itemSep, keySep)
		}

		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')

		for i, e := range v.m.Entries() {
			if i > 0 {
				buf.WriteString(itemSep)
			}

			appendJSONString(buf, e.Key)
			buf.WriteString(keySep)
			appendJSON(buf, e.Value, itemSep, keySep)
		}

		buf.WriteByte('}')
	}
}

// appendJSONString also escapes the characters encoding/json leaves raw but
// YAML forbids (DEL, C1 controls, U+FFFE and U+FFFF), so the text stays valid
// as flow-style YAML.
func appendJSONString(buf *bytes.Buffer, s string) {
	var enc bytes.Buffer

	e := json.NewEncoder(&enc)
	e.SetEscapeHTML(false)
	// Encoding a string never fails.
	_ = e.Encode(s)
	// Encode terminates every value with a newline.
	out := enc.Bytes()[:enc.Len()-1]

	if !bytes.ContainsFunc(out, yamlUnprintable) {
		buf.Write(out)
		return
	}

	for _, r := range string(out) {
		if yamlUnprintable(r) {
			fmt.Fprintf(buf, `\u%04x`, r)
			continue
		}

		buf.WriteRune(r)
	}
}

func yamlUnprintable(r rune) bool {
	return r >= 0x7f && r <= 0x9f || r == 0xfffe || r == 0xffff
}

func checkFinite(v Value) error {
	switch v.kind {
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return fmt.Errorf("json: unsupported float value %s", FormatFloat(v.f))
		}
	case KindSequence:
		for _, item := range v.seq {
			if err := checkFinite(item); err != nil {
				return err
			}
		}
	case KindMapping:
		for _, e := range v.m.Entries() {
			if err := checkFinite(e.Value); err != nil {
				return err
			}
		}
	}

	return nil
}
