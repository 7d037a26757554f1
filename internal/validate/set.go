package validate

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"structured-sft/options"
)

// ErrValidatorUnavailable reports that strict validation was requested for a
// format whose parser is missing and whose stand-in would soft-pass.
var ErrValidatorUnavailable = errors.New("validator unavailable")

// Degradation describes one stand-in in a Set.
type Degradation struct {
	Format     options.Format
	Capability options.CapabilityEnum
	Verdict    Verdict
}

func (d Degradation) String() string {
	return fmt.Sprintf("%s validation without %s: every candidate is %s", d.Format.Name(), d.Capability, d.Verdict)
}

// Set maps every format to its validator.
type Set struct {
	byFormat map[options.Format]Validator
	degraded []Degradation
}

// Resolve builds the validators once. A missing YAML parser soft-passes; a
// missing TOML parser rejects everything when strict and soft-passes otherwise.
func Resolve(caps options.CapabilityEnum, strict bool) *Set {
	s := &Set{byFormat: map[options.Format]Validator{}}

	for _, f := range options.Formats() {
		parser := options.ParserFor(f)

		switch {
		case parser == options.CapabilityNone || caps.Has(parser):
			s.byFormat[f] = validatorFor(f)
		case strict && f == options.FormatTOML:
			s.degrade(f, parser, VerdictRejected)
		default:
			s.degrade(f, parser, VerdictSoftPass)
		}
	}

	return s
}

func validatorFor(f options.Format) Validator {
	switch f {
	case options.FormatYAML:
		return YAML{}
	case options.FormatTOML:
		return TOML{}
	default:
		return XML{}
	}
}

func (s *Set) degrade(f options.Format, c options.CapabilityEnum, v Verdict) {
	s.byFormat[f] = standIn{format: f, verdict: v}
	s.degraded = append(s.degraded, Degradation{Format: f, Capability: c, Verdict: v})
}

// For returns the validator of f, or nil for an invalid format.
func (s *Set) For(f options.Format) Validator {
	return s.byFormat[f]
}

// Validate checks text as format f. Unknown formats are rejected.
func (s *Set) Validate(f options.Format, text string) Verdict {
	v := s.For(f)
	if v == nil {
		return VerdictRejected
	}

	return v.Validate(text)
}

// Degraded lists the stand-ins in use.
func (s *Set) Degraded() []Degradation {
	return s.degraded
}

// Preflight fails when strict validation is requested for one of formats but
// its parser is missing and the stand-in could only soft-pass.
func Preflight(caps options.CapabilityEnum, strict bool, formats []options.Format) error {
	if !strict {
		return nil
	}

	var missing []string

	for _, d := range Resolve(caps, strict).Degraded() {
		if d.Verdict != VerdictSoftPass {
			continue
		}

		if slices.Contains(formats, d.Format) {
			missing = append(missing, d.Capability.String())
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: strict mode needs %s", ErrValidatorUnavailable, strings.Join(missing, ", "))
	}

	return nil
}
