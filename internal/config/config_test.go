package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"structured-sft/internal/pipeline"
	"structured-sft/options"
)

func TestParse(t *testing.T) {
	yaml := `
pack: hard
seed: 7
strict: false
workers: 4
max_attempts: 3
counts:
  json_to_xml: 200
  text_to_yaml: 0
disable: [yaml-emitter]
builder:
  max_depth: 6
`

	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "hard", cfg.Pack)
	assert.Equal(t, "outputs/dummy_structured_sft_hard.jsonl", cfg.Out)
	assert.Equal(t, uint64(7), cfg.Seed)
	require.NotNil(t, cfg.Strict)
	assert.False(t, *cfg.Strict)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, map[string]int{"json_to_xml": 200, "text_to_yaml": 0}, cfg.Counts)
	assert.Equal(t, 6, cfg.Builder.MaxDepth)

	assert.True(t, Validate(cfg).IsValid())

	caps, err := cfg.Capabilities()
	require.NoError(t, err)
	assert.False(t, caps.Has(options.CapabilityYAMLEmitter))
	assert.True(t, caps.Has(options.CapabilityTOMLParser))

	pack, err := pipeline.LookupPack(cfg.Pack)
	require.NoError(t, err)
	assert.False(t, cfg.StrictFor(pack))
	assert.Equal(t, []pipeline.Job{
		{Subcategory: "json_to_xml", Count: 200},
		{Subcategory: "xml_to_yaml", Count: 1000},
		{Subcategory: "text_to_toml", Count: 1000},
		{Subcategory: "text_to_yaml", Count: 0},
	}, cfg.Jobs(pack))
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "general", cfg.Pack)
	assert.Equal(t, uint64(DefaultSeed), cfg.Seed)
	assert.Equal(t, "outputs/dummy_structured_sft.jsonl", cfg.Out)
	assert.Nil(t, cfg.Strict)
	assert.True(t, Validate(cfg).IsValid())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("pack: [unclosed"))
	require.Error(t, err)

	_, err = Parse([]byte("pakc: hard\n"))
	require.Error(t, err)
}

func TestStrictFor_PackDefault(t *testing.T) {
	cfg := Default()

	for _, p := range pipeline.Packs() {
		assert.Equal(t, p.Strict, cfg.StrictFor(p), p.Name)
	}

	strict := true
	cfg.Strict = &strict

	general, err := pipeline.LookupPack("general")
	require.NoError(t, err)
	assert.True(t, cfg.StrictFor(general))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"unknown pack", func(c *Config) { c.Pack = "soft" }, "unknown_pack"},
		{"empty out", func(c *Config) { c.Out = "" }, "missing_out"},
		{"no workers", func(c *Config) { c.Workers = 0 }, "workers_out_of_range"},
		{"too many workers", func(c *Config) { c.Workers = MaxWorkers + 1 }, "workers_out_of_range"},
		{"attempts", func(c *Config) { c.MaxAttempts = 0 }, "max_attempts_out_of_range"},
		{"unknown subcategory", func(c *Config) { c.Counts["text_to_yaml"] = 3 }, "unknown_subcategory"},
		{"negative count", func(c *Config) { c.Counts["json_to_xml"] = -1 }, "negative_count"},
		{"unknown capability", func(c *Config) { c.Disable = []string{"xml-parser"} }, "unknown_capability"},
		{"shallow depth", func(c *Config) { c.Builder.MaxDepth = 2 }, "max_depth_out_of_range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			res := Validate(cfg)
			require.Len(t, res.Errors, 1, res.Error())
			assert.Equal(t, tt.code, res.Errors[0].Code)
			require.Error(t, res.Error())
		})
	}

	assert.True(t, Validate(nil).HasErrors())
}

func TestValidate_SuggestsCapability(t *testing.T) {
	cfg := Default()
	cfg.Disable = []string{"toml_parser_x"}

	res := Validate(cfg)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, `did you mean "toml-parser"?`)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pack: toml_aug\nworkers: 2\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "toml_aug", cfg.Pack)
	assert.Equal(t, "outputs/dummy_structured_sft_toml_aug.jsonl", cfg.Out)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSetPack(t *testing.T) {
	cfg := Default()
	cfg.SetPack("hard")
	assert.Equal(t, "hard", cfg.Pack)
	assert.Equal(t, "outputs/dummy_structured_sft_hard.jsonl", cfg.Out)

	cfg.Out = "custom.jsonl"
	cfg.SetPack("toml_aug")
	assert.Equal(t, "custom.jsonl", cfg.Out)

	// an unknown pack keeps the path and is reported by Validate
	cfg.SetPack("nope")
	assert.Equal(t, "custom.jsonl", cfg.Out)
	assert.False(t, Validate(cfg).IsValid())
}
