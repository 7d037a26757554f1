package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

// Key selects a template: the pack that owns it and the subcategory.
type Key struct {
	Pack        string
	Subcategory string
}

func (k Key) String() string {
	return k.Pack + "/" + k.Subcategory
}

// Data is the template input.
type Data struct {
	// Source is the rendered source document or the free text.
	Source string
	// Attributes lists the requested attribute paths of extract tasks.
	Attributes []string
}

var (
	templates map[Key]*template.Template

	funcs = template.FuncMap{
		"join": func(items []string) string { return strings.Join(items, ", ") },
	}
)

var tomlConstraints = []string{
	"Constraints:",
	"- Use dotted tables and arrays-of-tables where appropriate.",
	"- Do NOT use TOML inline tables (curly braces like { ... }).",
	"- Use native TOML types: numbers/bools unquoted.",
}

func transform(instruction, answerFormat, sourceLabel string, constraints ...string) []string {
	lines := []string{instruction}
	lines = append(lines, constraints...)

	return append(lines, "Return ONLY "+answerFormat+".", "", sourceLabel+":", "{{.Source}}")
}

func extract(instruction, answerFormat string, constraints ...string) []string {
	lines := []string{instruction}
	lines = append(lines, constraints...)

	return append(lines, "Return ONLY "+answerFormat+".", "", "ATTRIBUTES:", "{{join .Attributes}}", "", "TEXT:", "{{.Source}}")
}

func init() {
	texts := map[Key][]string{}

	// general
	for _, src := range []string{"JSON", "YAML", "CSV"} {
		sub := strings.ToLower(src) + "_to_xml"
		texts[Key{"general", sub}] = transform("Convert the following "+src+" into well-formed XML.", "XML", src)
	}

	texts[Key{"general", "text_to_xml"}] = extract("Extract the following attributes from text and output well-formed XML.", "XML")
	texts[Key{"general", "xml_to_yaml"}] = transform("Convert the following XML into YAML.", "YAML", "XML")
	texts[Key{"general", "json_to_toml"}] = transform("Convert the following JSON into TOML.", "TOML", "JSON", tomlConstraints...)
	texts[Key{"general", "yaml_to_toml"}] = transform("Convert the following YAML into TOML.", "TOML", "YAML", tomlConstraints...)
	texts[Key{"general", "text_to_toml"}] = extract("Extract the following attributes from text and output TOML.", "TOML", tomlConstraints...)

	// hard
	texts[Key{"hard", "json_to_xml"}] = transform("Convert the following JSON into well-formed XML.", "XML", "JSON",
		"Constraints:",
		"- Use child elements only (no XML attributes).",
		"- Preserve key names and their letter case exactly.",
		"- Represent lists by repeating child elements in order.",
	)
	texts[Key{"hard", "xml_to_yaml"}] = transform("Convert the following XML into YAML.", "YAML", "XML",
		"Constraints:",
		"- Preserve original tag names exactly (no renaming to snake_case).",
		"- Child elements become mapping keys; repeated elements become lists.",
		"- Keep ordering and nesting as in XML.",
	)
	texts[Key{"hard", "text_to_toml"}] = extract("Extract the following attributes from text and output TOML.", "TOML",
		"Constraints:",
		"- Output ONLY the requested attributes (no extra keys).",
		"- Preserve key paths and nesting exactly as specified.",
		"- Use dotted tables and arrays-of-tables to represent nested objects and lists.",
		"- Do NOT use TOML inline tables (curly braces like { ... }).",
		"- Do NOT wrap values in JSON/HCL-style objects. Use [tables] / [[tables]] only.",
	)
	texts[Key{"hard", "text_to_yaml"}] = extract("Extract the following attributes from text and output YAML.", "YAML",
		"Constraints:",
		"- Output ONLY the requested attributes (no extra keys).",
		"- Preserve key paths and nesting exactly as specified.",
	)

	// toml_aug
	augRules := []string{
		"Rules:",
		"- Use native TOML types: numbers/bools unquoted.",
		"- Use array-of-tables ([[items]]) where appropriate.",
		"- Preserve nesting with [a.b] sections.",
		"- Do NOT use TOML inline tables (curly braces like { ... }).",
	}
	texts[Key{"toml_aug", "json_to_toml"}] = transform("Convert the following JSON into TOML.", "TOML", "JSON", augRules...)
	texts[Key{"toml_aug", "yaml_to_toml"}] = transform("Convert the following YAML into TOML.", "TOML", "YAML", augRules...)

	templates = make(map[Key]*template.Template, len(texts))
	for key, lines := range texts {
		templates[key] = template.Must(template.New(key.String()).Funcs(funcs).Parse(strings.Join(lines, "\n")))
	}
}

// Has reports whether a template exists for key.
func Has(key Key) bool {
	_, ok := templates[key]
	return ok
}

// Render executes the template of key.
func Render(key Key, data Data) (string, error) {
	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("no prompt template for %s", key)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", key, err)
	}

	return sb.String(), nil
}
