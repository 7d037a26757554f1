package options

import (
	"fmt"
	"strings"

	"structured-sft/internal/match"
)

// CapabilityEnum is a set of optional parser/emitter backends the pipeline may use.
// The set is resolved once at startup; a missing capability selects a degraded
// stand-in instead of failing per record.
type CapabilityEnum int

const (
	CapabilityYAMLEmitter CapabilityEnum = 1 << iota // block-style YAML dump; without it YAML falls back to flow-style JSON
	CapabilityYAMLParser                             // safe-mode YAML parse for validation
	CapabilityTOMLParser                             // strict TOML parse for validation

	CapabilityAll  CapabilityEnum = (1 << iota) - 1 // all capabilities combined
	CapabilityNone CapabilityEnum = 0               // no capabilities selected
)

var capabilityNames = []struct {
	flag CapabilityEnum
	name string
}{
	{CapabilityYAMLEmitter, "yaml-emitter"},
	{CapabilityYAMLParser, "yaml-parser"},
	{CapabilityTOMLParser, "toml-parser"},
}

func (c CapabilityEnum) Has(flag CapabilityEnum) bool {
	return c&flag == flag
}

func (c CapabilityEnum) Without(flag CapabilityEnum) CapabilityEnum {
	return c &^ flag
}

// Names lists the capabilities present in c.
func (c CapabilityEnum) Names() []string {
	var out []string

	for _, cn := range capabilityNames {
		if c.Has(cn.flag) {
			out = append(out, cn.name)
		}
	}

	return out
}

func (c CapabilityEnum) String() string {
	names := c.Names()
	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}

// ParseCapability resolves a single capability name such as "toml-parser".
func ParseCapability(name string) (CapabilityEnum, error) {
	for _, cn := range capabilityNames {
		if strings.EqualFold(strings.TrimSpace(name), cn.name) {
			return cn.flag, nil
		}
	}

	return CapabilityNone, fmt.Errorf("unknown capability %q%s", name, match.Hint(name, CapabilityAll.Names()))
}

// ParserFor returns the capability that validates f, or CapabilityNone when
// f needs no optional backend.
func ParserFor(f Format) CapabilityEnum {
	switch f {
	case FormatYAML:
		return CapabilityYAMLParser
	case FormatTOML:
		return CapabilityTOMLParser
	default:
		return CapabilityNone
	}
}
