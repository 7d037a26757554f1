package serialize

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"

	"structured-sft/options"
	"structured-sft/value"
)

const (
	xmlRootTag  = "root"
	xmlItemTag  = "item"
	xmlFieldTag = "field"
)

// XML renders values as element trees under <root>. Sequence elements repeat
// <item>; there are no attributes and no XML declaration.
type XML struct {
	variant options.Variant
}

func NewXML(variant options.Variant) *XML {
	return &XML{variant: variant}
}

func (*XML) Format() options.Format {
	return options.FormatXML
}

func (x *XML) Serialize(v value.Value) (string, error) {
	var buf bytes.Buffer

	enc := xml.NewEncoder(&buf)
	w := &xmlWriter{enc: enc}

	w.open(xmlRootTag)

	if x.variant == options.VariantHard {
		w.deep(v)
	} else {
		w.flat(v)
	}

	w.close(xmlRootTag)

	if w.err == nil {
		w.err = enc.Flush()
	}

	if w.err != nil {
		return "", fmt.Errorf("encode xml: %w", w.err)
	}

	return buf.String(), nil
}

// SanitizeTag returns k when it is usable as an element name and "field"
// otherwise. Names starting with "xml" in any case are reserved.
func SanitizeTag(k string) string {
	k = strings.TrimSpace(k)
	if k == "" || strings.HasPrefix(strings.ToLower(k), "xml") {
		return xmlFieldTag
	}

	for i, r := range k {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return xmlFieldTag
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return xmlFieldTag
		}
	}

	// encoding/xml follows the older XML 1.0 name tables, which miss many
	// letters unicode.IsLetter knows
	if !decodableName(k) {
		return xmlFieldTag
	}

	return k
}

// decodableName reports whether encoding/xml reads <k/> back as an element named k.
func decodableName(k string) bool {
	tok, err := xml.NewDecoder(strings.NewReader("<" + k + "/>")).Token()
	if err != nil {
		return false
	}

	start, ok := tok.(xml.StartElement)

	return ok && start.Name.Space == "" && start.Name.Local == k
}

type xmlWriter struct {
	enc *xml.Encoder
	err error
}

func (w *xmlWriter) token(t xml.Token) {
	if w.err == nil {
		w.err = w.enc.EncodeToken(t)
	}
}

func (w *xmlWriter) open(tag string) {
	w.token(xml.StartElement{Name: xml.Name{Local: tag}})
}

func (w *xmlWriter) close(tag string) {
	w.token(xml.EndElement{Name: xml.Name{Local: tag}})
}

func (w *xmlWriter) text(s string) {
	if s != "" {
		w.token(xml.CharData(s))
	}
}

func (w *xmlWriter) element(tag string, body func()) {
	w.open(tag)
	body()
	w.close(tag)
}

// deep writes the content of the current element recursively.
func (w *xmlWriter) deep(v value.Value) {
	switch v.Kind() {
	case value.KindMapping:
		for _, e := range v.Map().Entries() {
			w.element(SanitizeTag(e.Key), func() { w.deep(e.Value) })
		}
	case value.KindSequence:
		for _, item := range v.Items() {
			w.element(xmlItemTag, func() { w.deep(item) })
		}
	default:
		w.text(v.Text())
	}
}

// flat writes one fixed level: top-level keys, their <item> elements and the
// fields of each item. Anything deeper is written as its JSON text.
func (w *xmlWriter) flat(v value.Value) {
	m := v.Map()
	if m == nil {
		w.text(v.Text())
		return
	}

	for _, e := range m.Entries() {
		w.element(SanitizeTag(e.Key), func() {
			switch e.Value.Kind() {
			case value.KindSequence:
				for _, item := range e.Value.Items() {
					w.element(xmlItemTag, func() { w.fields(item) })
				}
			default:
				w.fields(e.Value)
			}
		})
	}
}

func (w *xmlWriter) fields(v value.Value) {
	m := v.Map()
	if m == nil {
		w.text(v.Text())
		return
	}

	for _, e := range m.Entries() {
		w.element(SanitizeTag(e.Key), func() { w.text(e.Value.Text()) })
	}
}
