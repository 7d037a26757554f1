package serialize

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"structured-sft/options"
	"structured-sft/value"
)

const yamlIndent = 2

// YAML renders block-style YAML when the emitter capability is present and
// falls back to flow-style JSON text otherwise.
type YAML struct {
	block bool
}

func NewYAML(caps options.CapabilityEnum) *YAML {
	return &YAML{block: caps.Has(options.CapabilityYAMLEmitter)}
}

func (*YAML) Format() options.Format {
	return options.FormatYAML
}

// Block reports whether the serializer emits block style.
func (y *YAML) Block() bool {
	return y.block
}

func (y *YAML) Serialize(v value.Value) (string, error) {
	if !y.block {
		return v.JSON(), nil
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(YAMLNode(v)); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}

	return buf.String(), nil
}

// YAMLNode converts v into a yaml.v3 node tree. Scalars carry explicit tags,
// so strings such as "true" or "" are quoted by the encoder instead of
// changing type on re-read.
func YAMLNode(v value.Value) *yaml.Node {
	switch v.Kind() {
	case value.KindBool:
		return yamlScalar("!!bool", strconv.FormatBool(v.Bool()))
	case value.KindInt:
		return yamlScalar("!!int", strconv.FormatInt(v.Int(), 10))
	case value.KindFloat:
		return yamlScalar("!!float", yamlFloat(v.Float()))
	case value.KindString:
		return yamlScalar("!!str", v.Str())
	case value.KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, YAMLNode(item))
		}

		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}

		return n
	case value.KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Map().Entries() {
			n.Content = append(n.Content, yamlScalar("!!str", e.Key), YAMLNode(e.Value))
		}

		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}

		return n
	default:
		return yamlScalar("!!null", "null")
	}
}

func yamlScalar(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	default:
		return value.FormatFloat(f)
	}
}
