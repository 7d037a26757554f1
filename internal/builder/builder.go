package builder

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"structured-sft/internal/common"
	"structured-sft/options"
	"structured-sft/value"
)

// Nesting bounds, counted in container levels (see value.Depth).
const (
	// MinDepth fits the fixed {"items": [ {...} ]} envelope.
	MinDepth = 3
	// DefaultMaxDepth fits every hard-variant structure plus one level of variants.
	DefaultMaxDepth = 7
	// MaxDepthCeiling caps any configured depth.
	MaxDepthCeiling = 12
)

// Words is the vocabulary for keys and string scalars.
var Words = []string{
	"alpha", "beta", "gamma", "delta", "omega", "zephyr", "lumen",
	"nova", "aurora", "ember", "terra", "eon", "atlas", "velox",
}

// Options tunes the shape of generated objects.
type Options struct {
	Variant options.Variant

	ItemsMin, ItemsMax int
	KeysMin, KeysMax   int

	// MaxDepth bounds value.Depth of every generated object.
	MaxDepth int

	// Probabilities of the optional hard-variant structures.
	PDimensions float64
	PFlags      float64
	PTags       float64
	PMeta       float64
	PComponents float64
	PNotes      float64
	PEmpty      float64
	PVariants   float64
}

// DefaultOptions returns the shape used by the packs for the given variant.
func DefaultOptions(variant options.Variant) Options {
	if variant == options.VariantHard {
		return Options{
			Variant:     options.VariantHard,
			ItemsMin:    3,
			ItemsMax:    6,
			KeysMin:     5,
			KeysMax:     9,
			MaxDepth:    DefaultMaxDepth,
			PDimensions: 0.9,
			PFlags:      0.8,
			PTags:       0.8,
			PMeta:       0.7,
			PComponents: 0.5,
			PNotes:      0.3,
			PEmpty:      0.2,
			PVariants:   0.25,
		}
	}

	return Options{
		Variant:  options.VariantGeneral,
		ItemsMin: 2,
		ItemsMax: 5,
		KeysMin:  3,
		KeysMax:  6,
		MaxDepth: MinDepth,
	}
}

// Builder draws random objects from an explicit generator. Two builders fed
// generators with the same seed produce the same values.
type Builder struct {
	rng  *rand.Rand
	opts Options
}

// NewRand returns a generator seeded deterministically from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New returns a Builder drawing from rng. Out-of-range options are clamped.
func New(rng *rand.Rand, opts Options) *Builder {
	if !opts.Variant.IsValid() {
		opts.Variant = options.VariantGeneral
	}

	opts.ItemsMin = max(0, opts.ItemsMin)
	opts.ItemsMax = max(opts.ItemsMin, opts.ItemsMax)
	opts.KeysMin = max(0, opts.KeysMin)
	opts.KeysMax = max(opts.KeysMin, opts.KeysMax)

	if !common.IsInRange(MinDepth, opts.MaxDepth, MaxDepthCeiling) {
		opts.MaxDepth = min(max(opts.MaxDepth, MinDepth), MaxDepthCeiling)
	}

	return &Builder{rng: rng, opts: opts}
}

// Rand exposes the generator so callers can keep drawing from the same stream.
func (b *Builder) Rand() *rand.Rand {
	return b.rng
}

func (b *Builder) Options() Options {
	return b.opts
}

// Object builds {"items": [item, ...]}.
func (b *Builder) Object() value.Value {
	n := b.between(b.opts.ItemsMin, b.opts.ItemsMax)

	items := make([]value.Value, 0, n)
	for range n {
		items = append(items, b.Item())
	}

	return value.Mapping(value.NewMap().Set("items", value.Seq(items...)))
}

// Item builds one element of "items" for the configured variant.
func (b *Builder) Item() value.Value {
	if b.opts.Variant == options.VariantHard {
		// the item sits below the root mapping and the items sequence
		return b.hardItem(3)
	}

	return b.flatItem()
}

// EmptyShell is an object whose only content is nested empty containers.
func EmptyShell() value.Value {
	item := value.NewMap().
		Set("attachments", value.Seq()).
		Set("extra", value.Mapping(nil))

	return value.Mapping(value.NewMap().Set("items", value.Seq(value.Mapping(item))))
}

// Word draws one vocabulary word.
func (b *Builder) Word() string {
	return Words[b.rng.IntN(len(Words))]
}

// Key draws a two-word key, snake_case or camelCase with equal odds.
func (b *Builder) Key() string {
	w1, w2 := b.Word(), b.Word()
	if b.rng.Float64() < 0.5 {
		return w1 + "_" + w2
	}

	return w1 + title(w2)
}

func (b *Builder) flatItem() value.Value {
	n := max(2, b.between(b.opts.KeysMin, b.opts.KeysMax))

	m := value.NewMap()
	for range n {
		m.Set(b.Key(), b.flatScalar())
	}

	return value.Mapping(m)
}

// flatScalar keeps booleans as their text so flat items read the same in every format.
func (b *Builder) flatScalar() value.Value {
	r := b.rng.Float64()

	switch {
	case r < 0.25:
		return value.Str(title(b.Word()))
	case r < 0.50:
		return value.Int(b.intBetween(0, 9999))
	case r < 0.75:
		if b.rng.IntN(2) == 1 {
			return value.Str("true")
		}

		return value.Str("false")
	default:
		return value.Str(b.Word())
	}
}

func (b *Builder) hardScalar() value.Value {
	r := b.rng.Float64()

	switch {
	case r < 0.20:
		return value.Int(b.intBetween(0, 9999))
	case r < 0.40:
		return value.Float(round(b.uniform(0, 9999)+b.rng.Float64(), 2))
	case r < 0.60:
		return value.Bool(b.rng.IntN(2) == 1)
	case r < 0.80:
		if b.rng.Float64() < 0.3 {
			return value.Str("")
		}

		return value.Str(title(b.Word()))
	default:
		return value.Str(b.Word())
	}
}

// hardItem builds an item whose own mapping sits at the given container level.
// Each optional structure is added only when its deepest level still fits MaxDepth.
func (b *Builder) hardItem(level int) value.Value {
	m := value.NewMap()

	for range b.between(b.opts.KeysMin, b.opts.KeysMax) {
		m.Set(b.Key(), b.hardScalar())
	}

	if b.fits(level+1) && b.chance(b.opts.PDimensions) {
		m.Set("dimensions", value.Mapping(value.NewMap().
			Set("height_cm", value.Float(round(b.uniform(1, 300), 1))).
			Set("width_cm", value.Float(round(b.uniform(1, 300), 1))).
			Set("depth_cm", value.Float(round(b.uniform(0.5, 100), 1)))))
	}

	if b.fits(level+1) && b.chance(b.opts.PFlags) {
		m.Set("flags", value.Mapping(value.NewMap().
			Set("featured", value.Bool(b.rng.IntN(2) == 1)).
			Set("archived", value.Bool(b.rng.IntN(2) == 1))))
	}

	if b.fits(level+1) && b.chance(b.opts.PTags) {
		tags := []value.Value{value.Str(b.Word()), value.Str(b.Word()), value.Str(b.Word())}
		m.Set("tags", value.Seq(tags[:b.between(1, 3)]...))
	}

	if b.fits(level+2) && b.chance(b.opts.PMeta) {
		// "value" deliberately mixes a string and an integer across entries
		m.Set("meta", value.Seq(
			value.Mapping(value.NewMap().Set("key", value.Str("origin")).Set("value", value.Str(title(b.Word())))),
			value.Mapping(value.NewMap().Set("key", value.Str("year")).Set("value", value.Int(b.intBetween(1900, 2025)))),
		))
	}

	if b.fits(level+2) && b.chance(b.opts.PComponents) {
		m.Set("components", value.Seq(b.component(), b.component()))
	}

	if b.chance(b.opts.PNotes) {
		r := b.rng.Float64()

		switch {
		case r < 0.4:
			m.Set("notes", value.Str(""))
		case r < 0.8:
			m.Set("notes", value.Str(title(b.Word())))
		default:
			m.Set("notes", value.Null())
		}
	}

	if b.fits(level+1) && b.chance(b.opts.PEmpty) {
		m.Set("attachments", value.Seq())
		m.Set("extra", value.Mapping(nil))
	}

	if b.fits(level+2) && b.chance(b.opts.PVariants) {
		n := b.between(1, 2)

		variants := make([]value.Value, 0, n)
		for range n {
			variants = append(variants, b.variant(level+2))
		}

		m.Set("variants", value.Seq(variants...))
	}

	return value.Mapping(m)
}

func (b *Builder) component() value.Value {
	return value.Mapping(value.NewMap().
		Set("name", value.Str(title(b.Word()))).
		Set("qty", value.Int(b.intBetween(1, 5))))
}

// variant builds a nested sub-item at the given level; it may nest further
// variants while they fit.
func (b *Builder) variant(level int) value.Value {
	m := value.NewMap().
		Set("sku", value.Str(strings.ToUpper(b.Word()[:3])+"-"+strconv.Itoa(b.between(100, 999)))).
		Set("price", value.Float(round(b.uniform(1, 500), 2))).
		Set(b.Key(), b.hardScalar())

	if b.fits(level+2) && b.chance(b.opts.PVariants) {
		m.Set("variants", value.Seq(b.variant(level+2)))
	}

	return value.Mapping(m)
}

func (b *Builder) fits(level int) bool {
	return level <= b.opts.MaxDepth
}

func (b *Builder) chance(p float64) bool {
	return p > 0 && b.rng.Float64() < p
}

// between draws an int in [lo, hi].
func (b *Builder) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}

	return lo + b.rng.IntN(hi-lo+1)
}

func (b *Builder) intBetween(lo, hi int) int64 {
	return int64(b.between(lo, hi))
}

func (b *Builder) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*b.rng.Float64()
}

func round(f float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(f*scale) / scale
}

func title(w string) string {
	if w == "" {
		return w
	}

	return strings.ToUpper(w[:1]) + w[1:]
}
