package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"structured-sft/internal/builder"
	"structured-sft/internal/logging"
	"structured-sft/internal/prompt"
	"structured-sft/internal/record"
	"structured-sft/internal/serialize"
	"structured-sft/internal/validate"
	"structured-sft/options"
	"structured-sft/value"
)

// ErrRejected marks a candidate that could not be serialized or did not pass
// validation. It is a normal outcome, not a run failure.
var ErrRejected = errors.New("candidate rejected")

// Request asks for one record.
type Request struct {
	Format      options.Format
	Variant     options.Variant
	Subcategory string
	Seed        uint64
}

// Sample is an accepted record together with what produced it.
type Sample struct {
	Record  record.Record
	Verdict validate.Verdict
	// Value is the generated object the record was derived from.
	Value value.Value
}

// Generator produces the records of one pack. It is safe for concurrent use:
// all per-request state lives in the request's own generator.
type Generator struct {
	pack        Pack
	strict      bool
	opts        builder.Options
	serializers *serialize.Set
	validators  *validate.Set
	logger      *zap.Logger
}

type Option func(*Generator)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logging.Or(logger)
	}
}

// WithBuilderOptions replaces the pack's default builder options.
func WithBuilderOptions(opts builder.Options) Option {
	return func(g *Generator) {
		g.opts = opts
	}
}

// WithMaxDepth bounds the nesting of generated objects.
func WithMaxDepth(depth int) Option {
	return func(g *Generator) {
		g.opts.MaxDepth = depth
	}
}

// NewGenerator resolves serializers and validators once for caps.
func NewGenerator(pack Pack, caps options.CapabilityEnum, strict bool, opts ...Option) *Generator {
	g := &Generator{
		pack:        pack,
		strict:      strict,
		opts:        builder.DefaultOptions(pack.Variant),
		serializers: serialize.NewSet(pack.Variant, caps),
		validators:  validate.Resolve(caps, strict),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.opts.Variant = pack.Variant

	return g
}

func (g *Generator) Pack() Pack {
	return g.pack
}

func (g *Generator) Strict() bool {
	return g.strict
}

// NewRequest builds the request of one subcategory attempt.
func (g *Generator) NewRequest(subcategory string, seed uint64) (Request, error) {
	sub, ok := g.pack.Subcategory(subcategory)
	if !ok {
		return Request{}, g.unknown(subcategory)
	}

	return Request{Format: sub.Format(), Variant: g.pack.Variant, Subcategory: sub.Name, Seed: seed}, nil
}

// Generate builds an object from the request seed and assembles its record.
func (g *Generator) Generate(req Request) (Sample, error) {
	sub, ok := g.pack.Subcategory(req.Subcategory)
	if !ok {
		return Sample{}, g.unknown(req.Subcategory)
	}

	if req.Format != sub.Format() || req.Variant != g.pack.Variant {
		return Sample{}, fmt.Errorf("request %s/%s does not match subcategory %s of pack %s",
			req.Format, req.Variant, sub.Name, g.pack.Name)
	}

	b := builder.New(builder.NewRand(req.Seed), g.opts)

	return g.Assemble(sub, b.Object(), b)
}

// Assemble renders obj for sub, validates the answer and builds the record.
// Extract tasks keep drawing from b to pick attributes.
func (g *Generator) Assemble(sub Subcategory, obj value.Value, b *builder.Builder) (Sample, error) {
	src, attrs, answerValue, err := g.compose(sub, obj, b)
	if err != nil {
		return Sample{}, err
	}

	f := sub.Format()

	answer, err := g.serializers.For(f).Serialize(answerValue)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %s: %w", ErrRejected, sub.Name, err)
	}

	verdict := g.validators.Validate(f, answer)
	if !verdict.OK() {
		return Sample{}, fmt.Errorf("%w: %s: %s answer is %s", ErrRejected, sub.Name, f, verdict)
	}

	text, err := prompt.Render(prompt.Key{Pack: g.pack.Name, Subcategory: sub.Name}, prompt.Data{
		Source:     src,
		Attributes: attrs,
	})
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		Record:  record.New(sub.Category, sub.Name, sub.Task, g.pack.SeedTag, text, answer),
		Verdict: verdict,
		Value:   obj,
	}, nil
}

// compose returns the prompt source, the requested attributes and the value
// the answer is rendered from.
func (g *Generator) compose(sub Subcategory, obj value.Value, b *builder.Builder) (string, []string, value.Value, error) {
	switch sub.Source {
	case SourceJSON:
		return obj.JSON(), nil, obj, nil
	case SourceYAML:
		src, err := g.serializers.For(options.FormatYAML).Serialize(obj)
		return src, nil, obj, g.sourceErr(sub, err)
	case SourceXML:
		src, err := g.serializers.For(options.FormatXML).Serialize(obj)
		return src, nil, obj, g.sourceErr(sub, err)
	case SourceCSV:
		src, err := prompt.CSV(obj)
		return src, nil, obj, g.sourceErr(sub, err)
	case SourceKeyText:
		items := itemsOf(obj)
		if len(items) == 0 {
			// describe a fresh item when the object has none
			items = []value.Value{b.Item()}
		}

		paths := prompt.TopLevelKeys(items[0], keyTextLimit)

		lines := make([]string, 0, sub.TextLines)
		for _, item := range items[:min(max(sub.TextLines, 1), len(items))] {
			lines = append(lines, prompt.AttributeText(item, paths))
		}

		return strings.Join(lines, "\n"), prompt.PathStrings(paths), obj, nil
	case SourceAttributes:
		first := value.Mapping(nil)
		if items := itemsOf(obj); len(items) > 0 {
			first = items[0]
		}

		var keep func(value.Value) bool
		if sub.Format() == options.FormatTOML {
			keep = prompt.NonNull
		}

		paths := prompt.PickPaths(b.Rand(), first, attributeLimit, keep)
		projected := value.Mapping(value.NewMap().Set("items", value.Seq(value.Project(first, paths))))

		return prompt.AttributeText(first, paths), prompt.PathStrings(paths), projected, nil
	default:
		return "", nil, value.Null(), fmt.Errorf("subcategory %s: unknown source kind %d", sub.Name, sub.Source)
	}
}

func (g *Generator) sourceErr(sub Subcategory, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s source: %w", ErrRejected, sub.Name, err)
}

func (g *Generator) unknown(subcategory string) error {
	return g.pack.UnknownSubcategory(subcategory)
}

func itemsOf(obj value.Value) []value.Value {
	items, _ := obj.Map().Get("items")
	return items.Items()
}
