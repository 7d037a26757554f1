package validate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"structured-sft/internal/builder"
	"structured-sft/internal/serialize"
	"structured-sft/options"
	"structured-sft/value"
)

func TestXML_Validate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Verdict
	}{
		{"single root", "<root><a>1</a></root>", VerdictAccepted},
		{"declaration and comment", "<?xml version=\"1.0\"?>\n<!-- c --><root/>\n", VerdictAccepted},
		{"escaped text", "<root>a &lt; b &amp; c</root>", VerdictAccepted},

		{"empty", "", VerdictRejected},
		{"two roots", "<a/><b/>", VerdictRejected},
		{"text outside root", "<root/>tail", VerdictRejected},
		{"unclosed", "<root><a></root>", VerdictRejected},
		{"truncated", "<root><a>", VerdictRejected},
		{"bare ampersand", "<root>a & b</root>", VerdictRejected},
		{"unknown entity", "<root>&nope;</root>", VerdictRejected},
		{"json", `{"items": []}`, VerdictRejected},
		{"duplicate attribute", `<a b="1" b="2"/>`, VerdictRejected},
		{"doctype inside root", `<a><!DOCTYPE x></a>`, VerdictRejected},
		{"doctype after root", `<a/><!DOCTYPE x>`, VerdictRejected},
		{"declaration after root", `<a></a><?xml version="1.0"?>`, VerdictRejected},
		{"declaration after whitespace", " <?xml version=\"1.0\"?><a/>", VerdictRejected},
		{"unbound element prefix", `<x:a/>`, VerdictRejected},
		{"unbound attribute prefix", `<a x:b="1"/>`, VerdictRejected},
		{"prefix out of scope", `<r><a xmlns:x="urn:x"/><x:b/></r>`, VerdictRejected},
		{"junk after root", "<a></a>junk", VerdictRejected},
		{"bad name", "<1a/>", VerdictRejected},

		{"doctype before root", "<!DOCTYPE root><root/>", VerdictAccepted},
		{"bound prefix", `<x:a xmlns:x="urn:x"><x:b x:c="1"/></x:a>`, VerdictAccepted},
		{"default namespace", `<a xmlns="urn:a"><b/></a>`, VerdictAccepted},
		{"xml prefix", `<a xml:lang="en"/>`, VerdictAccepted},
		{"distinct attributes", `<a b="1" c="2"/>`, VerdictAccepted},
		{"processing instruction", `<a><?pi data?></a>`, VerdictAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, XML{}.Validate(tt.input))
		})
	}
}

func TestYAML_Validate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Verdict
	}{
		{"block mapping", "items:\n  - name: a\n    count: 3\n", VerdictAccepted},
		{"flow json", `{"items": [{"name": "a"}]}`, VerdictAccepted},
		{"empty stream", "", VerdictAccepted},
		{"plain scalar", "hello", VerdictAccepted},

		{"two documents", "a: 1\n---\nb: 2\n", VerdictRejected},
		{"nested plain mapping", "key: value: other\n", VerdictRejected},
		{"unclosed flow", "{a: [1, 2}", VerdictRejected},
		{"tab indentation", "a:\n\tb: 1\n", VerdictRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, YAML{}.Validate(tt.input))
		})
	}
}

func TestTOML_Validate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Verdict
	}{
		{"array of tables", "[[items]]\nname = \"a\"\ncount = 3\n", VerdictAccepted},
		{"empty array", "items = []\n", VerdictAccepted},
		{"empty document", "", VerdictAccepted},
		{"special floats", "f = [nan, -inf, 2.0]\n", VerdictAccepted},

		{"duplicate key", "a = 1\na = 2\n", VerdictRejected},
		{"unquoted string", "a = hello\n", VerdictRejected},
		{"table redefined", "[a]\nx = 1\n[a]\ny = 2\n", VerdictRejected},
		{"json", `{"items": []}`, VerdictRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TOML{}.Validate(tt.input))
		})
	}
}

func TestGuard_RecoversPanic(t *testing.T) {
	assert.Equal(t, VerdictRejected, guard(func() bool { panic("boom") }))
	assert.Equal(t, VerdictAccepted, guard(func() bool { return true }))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		caps     options.CapabilityEnum
		strict   bool
		yaml     Verdict
		toml     Verdict
		degraded int
	}{
		{"all available", options.CapabilityAll, true, VerdictRejected, VerdictRejected, 0},
		{"no yaml parser", options.CapabilityAll.Without(options.CapabilityYAMLParser), false, VerdictSoftPass, VerdictRejected, 1},
		{"no toml parser, lenient", options.CapabilityAll.Without(options.CapabilityTOMLParser), false, VerdictRejected, VerdictSoftPass, 1},
		{"no toml parser, strict", options.CapabilityAll.Without(options.CapabilityTOMLParser), true, VerdictRejected, VerdictRejected, 1},
		{"nothing", options.CapabilityNone, false, VerdictSoftPass, VerdictSoftPass, 2},
	}

	// neither text parses in its format, so real validators reject them
	const notYAML, notTOML = "{a: [1, 2}", "a = hello\n"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Resolve(tt.caps, tt.strict)

			assert.Equal(t, tt.yaml, set.Validate(options.FormatYAML, notYAML))
			assert.Equal(t, tt.toml, set.Validate(options.FormatTOML, notTOML))
			assert.Equal(t, VerdictAccepted, set.Validate(options.FormatXML, "<root/>"))
			assert.Len(t, set.Degraded(), tt.degraded)
		})
	}
}

func TestResolve_DegradationsNameTheParser(t *testing.T) {
	set := Resolve(options.CapabilityNone, false)

	got := map[options.Format]options.CapabilityEnum{}
	for _, d := range set.Degraded() {
		got[d.Format] = d.Capability
		assert.Equal(t, VerdictSoftPass, d.Verdict)
	}

	assert.Equal(t, map[options.Format]options.CapabilityEnum{
		options.FormatYAML: options.ParserFor(options.FormatYAML),
		options.FormatTOML: options.ParserFor(options.FormatTOML),
	}, got)
	assert.Equal(t, XML{}, set.For(options.FormatXML))
}

func TestResolve_StrictRejectsValidTOML(t *testing.T) {
	set := Resolve(options.CapabilityNone, true)
	assert.Equal(t, VerdictRejected, set.Validate(options.FormatTOML, "a = 1\n"))
	assert.Equal(t, VerdictSoftPass, set.Validate(options.FormatYAML, "a: 1\n"))
}

func TestSet_UnknownFormat(t *testing.T) {
	set := Resolve(options.CapabilityAll, false)
	assert.Nil(t, set.For(options.Format(0)))
	assert.Equal(t, VerdictRejected, set.Validate(options.Format(0), "<root/>"))
}

func TestPreflight(t *testing.T) {
	noYAML := options.CapabilityAll.Without(options.CapabilityYAMLParser)
	noTOML := options.CapabilityAll.Without(options.CapabilityTOMLParser)
	all := []options.Format{options.FormatXML, options.FormatTOML, options.FormatYAML}

	require.NoError(t, Preflight(options.CapabilityAll, true, all))
	require.NoError(t, Preflight(noYAML, false, all))
	require.NoError(t, Preflight(noYAML, true, []options.Format{options.FormatXML, options.FormatTOML}))
	// the strict TOML stand-in rejects instead of claiming validity
	require.NoError(t, Preflight(noTOML, true, all))

	err := Preflight(noYAML, true, all)
	require.ErrorIs(t, err, ErrValidatorUnavailable)
	assert.Contains(t, err.Error(), "yaml-parser")
}

func TestRoundTrip_BuilderOutput(t *testing.T) {
	set := Resolve(options.CapabilityAll, true)

	for _, variant := range []options.Variant{options.VariantGeneral, options.VariantHard} {
		serializers := serialize.NewSet(variant, options.CapabilityAll)

		for seed := range 40 {
			b := builder.New(builder.NewRand(uint64(seed)), builder.DefaultOptions(variant))
			obj := b.Object()

			for _, f := range options.Formats() {
				out, err := serializers.For(f).Serialize(obj)
				require.NoError(t, err)
				assert.Equal(t, VerdictAccepted, set.Validate(f, out), "%s %s seed %d:\n%s", variant.Name(), f, seed, out)
			}
		}
	}
}

func TestRoundTrip_EdgeShapes(t *testing.T) {
	set := Resolve(options.CapabilityAll, true)
	empty := value.Mapping(value.NewMap().Set("items", value.Seq()))

	for _, variant := range []options.Variant{options.VariantGeneral, options.VariantHard} {
		serializers := serialize.NewSet(variant, options.CapabilityAll)

		for _, obj := range []value.Value{empty, builder.EmptyShell()} {
			for _, f := range options.Formats() {
				out, err := serializers.For(f).Serialize(obj)
				require.NoError(t, err)
				assert.Equal(t, VerdictAccepted, set.Validate(f, out), "%s:\n%s", f, out)
			}
		}
	}
}

func ExampleVerdict_OK() {
	for _, v := range []Verdict{VerdictRejected, VerdictAccepted, VerdictSoftPass} {
		fmt.Println(v, v.OK())
	}
	// Output:
	// Rejected false
	// Accepted true
	// SoftPass true
}
