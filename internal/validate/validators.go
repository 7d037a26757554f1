package validate

import (
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"structured-sft/options"
)

// Validator parses candidate text of one format.
type Validator interface {
	Format() options.Format
	Validate(text string) Verdict
}

// guard turns a panic inside check into a rejection.
func guard(check func() bool) (verdict Verdict) {
	defer func() {
		if recover() != nil {
			verdict = VerdictRejected
		}
	}()

	if check() {
		return VerdictAccepted
	}

	return VerdictRejected
}

// XML accepts well-formed documents with exactly one root element.
type XML struct{}

func (XML) Format() options.Format { return options.FormatXML }

func (XML) Validate(text string) Verdict {
	return guard(func() bool { return wellFormedXML(text) })
}

// xmlNamespaceURL is the namespace encoding/xml binds the predefined xml prefix to.
const xmlNamespaceURL = "http://www.w3.org/XML/1998/namespace"

func wellFormedXML(text string) bool {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true

	var (
		depth, roots int
		// bound holds the namespace URLs declared on each open element
		bound [][]string
	)

	for n := 0; ; n++ {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return roots == 1 && depth == 0
		}

		if err != nil {
			return false
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return false
				}
			}

			bound = append(bound, declaredNamespaces(t.Attr))
			if !wellFormedStart(t, bound) {
				return false
			}

			depth++
		case xml.EndElement:
			depth--
			bound = bound[:len(bound)-1]
		case xml.CharData:
			if depth == 0 && strings.TrimSpace(string(t)) != "" {
				return false
			}
		case xml.ProcInst:
			// the declaration may only open the document
			if strings.EqualFold(t.Target, "xml") && n > 0 {
				return false
			}
		case xml.Directive:
			if depth > 0 || roots > 0 {
				return false
			}
		}
	}
}

func declaredNamespaces(attrs []xml.Attr) []string {
	var urls []string

	for _, a := range attrs {
		if a.Name.Space == "xmlns" || a.Name.Space == "" && a.Name.Local == "xmlns" {
			urls = append(urls, a.Value)
		}
	}

	return urls
}

// wellFormedStart rejects repeated attributes and prefixes no xmlns
// declaration in scope resolves. encoding/xml leaves an unbound prefix in
// Name.Space instead of failing.
func wellFormedStart(t xml.StartElement, bound [][]string) bool {
	if !resolved(t.Name, bound) {
		return false
	}

	seen := make(map[xml.Name]bool, len(t.Attr))

	for _, a := range t.Attr {
		if seen[a.Name] {
			return false
		}

		seen[a.Name] = true

		if a.Name.Space != "xmlns" && !resolved(a.Name, bound) {
			return false
		}
	}

	return true
}

func resolved(name xml.Name, bound [][]string) bool {
	if name.Space == "" || name.Space == xmlNamespaceURL {
		return true
	}

	for _, urls := range bound {
		if slices.Contains(urls, name.Space) {
			return true
		}
	}

	return false
}

// YAML accepts text that decodes as at most one document.
type YAML struct{}

func (YAML) Format() options.Format { return options.FormatYAML }

func (YAML) Validate(text string) Verdict {
	return guard(func() bool { return singleYAMLDocument(text) })
}

func singleYAMLDocument(text string) bool {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var doc any
	if err := dec.Decode(&doc); err != nil {
		// an empty stream is a null document
		return errors.Is(err, io.EOF)
	}

	var extra any

	return errors.Is(dec.Decode(&extra), io.EOF)
}

// TOML accepts text that decodes as a TOML document.
type TOML struct{}

func (TOML) Format() options.Format { return options.FormatTOML }

func (TOML) Validate(text string) Verdict {
	return guard(func() bool {
		var doc map[string]any
		_, err := toml.Decode(text, &doc)

		return err == nil
	})
}

// standIn replaces a validator whose parser is unavailable.
type standIn struct {
	format  options.Format
	verdict Verdict
}

func (s standIn) Format() options.Format { return s.format }

func (s standIn) Validate(string) Verdict { return s.verdict }
