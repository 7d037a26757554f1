package serialize

import (
	"fmt"
	"strconv"
	"strings"

	"structured-sft/options"
	"structured-sft/value"
)

// TOML renders values with standard tables and arrays of tables only.
type TOML struct{}

func NewTOML() *TOML {
	return &TOML{}
}

func (*TOML) Format() options.Format {
	return options.FormatTOML
}

// Serialize renders v as a TOML document. A non-mapping root is wrapped as
// {value: v} since a TOML document is always a table.
func (t *TOML) Serialize(v value.Value) (string, error) {
	root := v.Map()
	if root == nil {
		root = value.NewMap().Set("value", v)
	}

	w := &tomlWriter{}
	if err := w.table(nil, root); err != nil {
		return "", err
	}

	return strings.TrimSpace(w.sb.String()) + "\n", nil
}

type tomlWriter struct {
	sb strings.Builder
}

// table writes the body of the table at path: plain keys first, then the
// sub-tables and arrays of tables, each group in insertion order.
func (w *tomlWriter) table(path []string, m *value.Map) error {
	var nested []value.Entry

	for _, e := range m.Entries() {
		switch Dispatch(e.Value) {
		case DispatcherOmit:
			continue
		case DispatcherScalar, DispatcherArray:
			w.sb.WriteString(tomlKey(e.Key) + " = ")
			w.inline(e.Value)
			w.sb.WriteByte('\n')
		case DispatcherTable, DispatcherTableArray:
			nested = append(nested, e)
		default:
			return fmt.Errorf("%w: toml key %q mixes tables with other values", ErrUnrepresentable, tomlHeader(append(path, e.Key)))
		}
	}

	for _, e := range nested {
		sub := append(path[:len(path):len(path)], e.Key)

		if Dispatch(e.Value) == DispatcherTable {
			w.sb.WriteString("\n[" + tomlHeader(sub) + "]\n")

			if err := w.table(sub, e.Value.Map()); err != nil {
				return err
			}

			continue
		}

		for _, item := range e.Value.Items() {
			w.sb.WriteString("\n[[" + tomlHeader(sub) + "]]\n")

			if err := w.table(sub, item.Map()); err != nil {
				return err
			}
		}
	}

	return nil
}

// inline writes a scalar or an array holding no tables.
func (w *tomlWriter) inline(v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		w.sb.WriteString(`""`)
	case value.KindBool:
		w.sb.WriteString(strconv.FormatBool(v.Bool()))
	case value.KindInt:
		w.sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case value.KindFloat:
		w.sb.WriteString(value.FormatFloat(v.Float()))
	case value.KindString:
		w.sb.WriteString(tomlString(v.Str()))
	case value.KindSequence:
		w.sb.WriteByte('[')

		for i, item := range v.Items() {
			if i > 0 {
				w.sb.WriteString(", ")
			}

			w.inline(item)
		}

		w.sb.WriteByte(']')
	}
}

func tomlHeader(path []string) string {
	keys := make([]string, len(path))
	for i, k := range path {
		keys[i] = tomlKey(k)
	}

	return strings.Join(keys, ".")
}

// tomlKey returns k as is when it is a bare key, quoted otherwise.
func tomlKey(k string) string {
	if k == "" {
		return `""`
	}

	for _, r := range k {
		if !isBareKeyRune(r) {
			return tomlString(k)
		}
	}

	return k
}

func isBareKeyRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-'
}

// tomlString renders s as a basic string.
func tomlString(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
				continue
			}

			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
