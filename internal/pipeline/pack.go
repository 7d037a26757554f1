package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"structured-sft/internal/match"
	"structured-sft/internal/record"
	"structured-sft/options"
)

// SourceKind selects what the prompt shows and what the answer holds.
type SourceKind int

const (
	_ SourceKind = iota

	SourceJSON // ordered JSON text of the object
	SourceYAML // the pack's YAML rendering of the object
	SourceCSV  // the items as a table
	SourceXML  // the pack's XML rendering of the object
	// SourceKeyText lists the top-level keys of the first items as text; the
	// answer is the whole object.
	SourceKeyText
	// SourceAttributes lists picked attribute paths of the first item; the
	// answer holds only those paths.
	SourceAttributes
)

const (
	// keyTextLimit caps the attributes named by SourceKeyText prompts.
	keyTextLimit = 6
	// attributeLimit caps the paths picked for SourceAttributes prompts.
	attributeLimit = 8
)

// Subcategory is one directional conversion of a pack.
type Subcategory struct {
	Name     string
	Category string
	Task     record.Task
	Source   SourceKind
	// TextLines is the number of items described by SourceKeyText.
	TextLines    int
	DefaultCount int
}

// Format is the target format named by the subcategory.
func (s Subcategory) Format() options.Format {
	f, _ := options.FormatOfSubcategory(s.Name)
	return f
}

// Pack is a named set of subcategories sharing a builder variant and a seed tag.
type Pack struct {
	Name    string
	Variant options.Variant
	// SeedTag is written into every record of the pack.
	SeedTag string
	// Strict is the default strictness of TOML validation.
	Strict        bool
	DefaultOut    string
	Subcategories []Subcategory
}

var packs = []Pack{
	{
		Name:       "general",
		Variant:    options.VariantGeneral,
		SeedTag:    "dummy",
		DefaultOut: "outputs/dummy_structured_sft.jsonl",
		Subcategories: []Subcategory{
			{Name: "json_to_xml", Category: "C_XML", Task: record.TaskTransform, Source: SourceJSON, DefaultCount: 300},
			{Name: "yaml_to_xml", Category: "C_XML", Task: record.TaskTransform, Source: SourceYAML, DefaultCount: 300},
			{Name: "csv_to_xml", Category: "C_XML", Task: record.TaskTransform, Source: SourceCSV},
			{Name: "text_to_xml", Category: "C_XML", Task: record.TaskExtract, Source: SourceKeyText, TextLines: 2},
			{Name: "xml_to_yaml", Category: "C_XML", Task: record.TaskTransform, Source: SourceXML, DefaultCount: 150},
			{Name: "json_to_toml", Category: "C_TOML", Task: record.TaskTransform, Source: SourceJSON, DefaultCount: 150},
			{Name: "yaml_to_toml", Category: "C_TOML", Task: record.TaskTransform, Source: SourceYAML, DefaultCount: 150},
			{Name: "text_to_toml", Category: "C_TOML", Task: record.TaskExtract, Source: SourceKeyText, TextLines: 1, DefaultCount: 150},
		},
	},
	{
		Name:       "hard",
		Variant:    options.VariantHard,
		SeedTag:    "dummy_hard",
		Strict:     true,
		DefaultOut: "outputs/dummy_structured_sft_hard.jsonl",
		Subcategories: []Subcategory{
			{Name: "json_to_xml", Category: "C_XML", Task: record.TaskTransform, Source: SourceJSON, DefaultCount: 1000},
			{Name: "xml_to_yaml", Category: "C_XML", Task: record.TaskTransform, Source: SourceXML, DefaultCount: 1000},
			{Name: "text_to_toml", Category: "C_TOML", Task: record.TaskExtract, Source: SourceAttributes, DefaultCount: 1000},
			{Name: "text_to_yaml", Category: "C_YAML", Task: record.TaskExtract, Source: SourceAttributes, DefaultCount: 1000},
		},
	},
	{
		Name:       "toml_aug",
		Variant:    options.VariantHard,
		SeedTag:    "toml_aug",
		Strict:     true,
		DefaultOut: "outputs/dummy_structured_sft_toml_aug.jsonl",
		Subcategories: []Subcategory{
			{Name: "json_to_toml", Category: "C_TOML", Task: record.TaskTransform, Source: SourceJSON, DefaultCount: 500},
			{Name: "yaml_to_toml", Category: "C_TOML", Task: record.TaskTransform, Source: SourceYAML, DefaultCount: 500},
		},
	},
}

// Packs returns the registered packs.
func Packs() []Pack {
	return packs
}

// PackNames lists the registered pack names.
func PackNames() []string {
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}

	return names
}

func LookupPack(name string) (Pack, error) {
	for _, p := range packs {
		if p.Name == name {
			return p, nil
		}
	}

	names := PackNames()

	return Pack{}, fmt.Errorf("unknown pack %q%s (want one of %s)", name, match.Hint(name, names), strings.Join(names, ", "))
}

func (p Pack) Subcategory(name string) (Subcategory, bool) {
	for _, s := range p.Subcategories {
		if s.Name == name {
			return s, true
		}
	}

	return Subcategory{}, false
}

// UnknownSubcategory is the error for a subcategory name the pack lacks.
func (p Pack) UnknownSubcategory(name string) error {
	names := p.SubcategoryNames()

	return fmt.Errorf("pack %s has no subcategory %q%s (want one of %s)",
		p.Name, name, match.Hint(name, names), strings.Join(names, ", "))
}

// SubcategoryNames lists the subcategories in output order.
func (p Pack) SubcategoryNames() []string {
	names := make([]string, len(p.Subcategories))
	for i, s := range p.Subcategories {
		names[i] = s.Name
	}

	return names
}

// Formats lists the distinct target formats of the given subcategories, or of
// all subcategories when none are named.
func (p Pack) Formats(subcategories ...string) []options.Format {
	var out []options.Format

	seen := map[options.Format]bool{}

	for _, s := range p.Subcategories {
		if len(subcategories) > 0 && !slices.Contains(subcategories, s.Name) {
			continue
		}

		if f := s.Format(); !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}

	return out
}

// DefaultJobs returns one job per subcategory with its default count.
func (p Pack) DefaultJobs() []Job {
	jobs := make([]Job, len(p.Subcategories))
	for i, s := range p.Subcategories {
		jobs[i] = Job{Subcategory: s.Name, Count: s.DefaultCount}
	}

	return jobs
}
