package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"structured-sft/internal/prompt"
	"structured-sft/options"
)

func TestPacks_Registry(t *testing.T) {
	assert.Equal(t, []string{"general", "hard", "toml_aug"}, PackNames())

	for _, p := range Packs() {
		assert.True(t, p.Variant.IsValid(), p.Name)
		assert.NotEmpty(t, p.SeedTag, p.Name)
		assert.NotEmpty(t, p.DefaultOut, p.Name)

		for _, s := range p.Subcategories {
			assert.True(t, s.Format().IsValid(), "%s/%s", p.Name, s.Name)
			assert.True(t, prompt.Has(prompt.Key{Pack: p.Name, Subcategory: s.Name}), "%s/%s has no template", p.Name, s.Name)
			assert.NotZero(t, s.Source, "%s/%s", p.Name, s.Name)
		}
	}
}

func TestLookupPack(t *testing.T) {
	p, err := LookupPack("hard")
	require.NoError(t, err)
	assert.Equal(t, "dummy_hard", p.SeedTag)
	assert.True(t, p.Strict)
	assert.Equal(t, []string{"json_to_xml", "xml_to_yaml", "text_to_toml", "text_to_yaml"}, p.SubcategoryNames())

	_, err = LookupPack("soft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "general, hard, toml_aug")

	_, err = LookupPack("toml-aug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "toml_aug"?`)
}

func TestPack_UnknownSubcategory(t *testing.T) {
	p, err := LookupPack("hard")
	require.NoError(t, err)

	err = p.UnknownSubcategory("text_to_yml")
	assert.EqualError(t, err, `pack hard has no subcategory "text_to_yml" (did you mean "text_to_yaml"?) `+
		`(want one of json_to_xml, xml_to_yaml, text_to_toml, text_to_yaml)`)
}

func TestPack_Formats(t *testing.T) {
	general, err := LookupPack("general")
	require.NoError(t, err)

	assert.Equal(t, []options.Format{options.FormatXML, options.FormatYAML, options.FormatTOML}, general.Formats())
	assert.Equal(t, []options.Format{options.FormatTOML}, general.Formats("json_to_toml", "text_to_toml"))

	aug, err := LookupPack("toml_aug")
	require.NoError(t, err)
	assert.Equal(t, []options.Format{options.FormatTOML}, aug.Formats())
}

func TestPack_DefaultJobs(t *testing.T) {
	general, err := LookupPack("general")
	require.NoError(t, err)

	jobs := general.DefaultJobs()
	require.Len(t, jobs, 8)
	assert.Equal(t, Job{Subcategory: "json_to_xml", Count: 300}, jobs[0])
	assert.Equal(t, Job{Subcategory: "csv_to_xml", Count: 0}, jobs[2])
	assert.Equal(t, Job{Subcategory: "text_to_toml", Count: 150}, jobs[7])
}

func TestSubcategory_CategoryFollowsSource(t *testing.T) {
	// xml_to_yaml is filed under the XML category in both packs
	for _, name := range []string{"general", "hard"} {
		p, err := LookupPack(name)
		require.NoError(t, err)

		s, ok := p.Subcategory("xml_to_yaml")
		require.True(t, ok)
		assert.Equal(t, "C_XML", s.Category)
		assert.Equal(t, options.FormatYAML, s.Format())
	}
}

func TestDeriveSeed(t *testing.T) {
	base := DeriveSeed(42, "general", "json_to_xml", 0, 0)

	assert.Equal(t, base, DeriveSeed(42, "general", "json_to_xml", 0, 0))
	assert.NotEqual(t, base, DeriveSeed(43, "general", "json_to_xml", 0, 0))
	assert.NotEqual(t, base, DeriveSeed(42, "hard", "json_to_xml", 0, 0))
	assert.NotEqual(t, base, DeriveSeed(42, "general", "yaml_to_xml", 0, 0))
	assert.NotEqual(t, base, DeriveSeed(42, "general", "json_to_xml", 1, 0))
	assert.NotEqual(t, base, DeriveSeed(42, "general", "json_to_xml", 0, 1))
	// the separator keeps pack and subcategory apart
	assert.NotEqual(t, DeriveSeed(1, "ab", "c", 0, 0), DeriveSeed(1, "a", "bc", 0, 0))
}
