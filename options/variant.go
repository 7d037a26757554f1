package options

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Variant -trimprefix=Variant -output=variant_string.go

// Variant selects how hard the generated objects and their renderings are.
type Variant int

const (
	_ Variant = iota // skip zero value, use it as a default (invalid) value for Variant

	VariantGeneral // shallow flat items
	VariantHard    // deep nesting, sparse and empty fields, mixed scalar types

	// VariantTotal is a constant that represents the total number of variants defined
	VariantTotal = int(iota)
)

func (v Variant) IsValid() bool {
	return v > 0 && int(v) < VariantTotal
}

func (v Variant) Name() string {
	return strings.ToLower(v.String())
}

func ParseVariant(s string) (Variant, error) {
	for v := Variant(1); int(v) < VariantTotal; v++ {
		if strings.EqualFold(s, v.Name()) {
			return v, nil
		}
	}

	return 0, fmt.Errorf("unknown variant %q", s)
}
