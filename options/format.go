package options

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Format -trimprefix=Format -output=format_string.go

// Format is a target serialization language.
type Format int

const (
	_ Format = iota // skip zero value, use it as a default (invalid) value for Format

	FormatXML
	FormatTOML
	FormatYAML

	// FormatTotal is a constant that represents the total number of formats defined
	FormatTotal = int(iota)
)

// Formats lists every valid format in declaration order.
func Formats() []Format {
	return []Format{FormatXML, FormatTOML, FormatYAML}
}

func (f Format) IsValid() bool {
	return f > 0 && int(f) < FormatTotal
}

// Name is the lower-case name used in subcategory labels, e.g. "toml".
func (f Format) Name() string {
	return strings.ToLower(f.String())
}

// Category is the coarse record category for answers in this format, e.g. "C_TOML".
func (f Format) Category() string {
	return "C_" + f.String()
}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, f.Name()) {
			return f, nil
		}
	}

	return 0, fmt.Errorf("unknown format %q", s)
}

// FormatOfSubcategory returns the target format named by a "<source>_to_<target>" label.
func FormatOfSubcategory(subcategory string) (Format, bool) {
	_, target, ok := strings.Cut(subcategory, "_to_")
	if !ok {
		return 0, false
	}

	f, err := ParseFormat(target)
	if err != nil {
		return 0, false
	}

	return f, true
}
