package serialize

import (
	"errors"

	"structured-sft/options"
	"structured-sft/value"
)

// ErrUnrepresentable is returned when a value has no rendering in the target
// grammar under its rules (e.g. a TOML array mixing tables and scalars).
var ErrUnrepresentable = errors.New("value cannot be represented")

// Serializer renders a value into one target format.
type Serializer interface {
	Format() options.Format
	Serialize(v value.Value) (string, error)
}

// Set holds the serializers of one pack, resolved once from the variant and
// the available capabilities.
type Set struct {
	byFormat map[options.Format]Serializer
}

// NewSet builds serializers for every format.
func NewSet(variant options.Variant, caps options.CapabilityEnum) *Set {
	return &Set{byFormat: map[options.Format]Serializer{
		options.FormatXML:  NewXML(variant),
		options.FormatTOML: NewTOML(),
		options.FormatYAML: NewYAML(caps),
	}}
}

// For returns the serializer of f, or nil for an invalid format.
func (s *Set) For(f options.Format) Serializer {
	return s.byFormat[f]
}
