// Package config loads the YAML run configuration of the generate command.
//
// Example:
//
//	pack: hard
//	out: outputs/hard.jsonl
//	seed: 7
//	strict: true
//	workers: 4
//	max_attempts: 3
//	counts:
//	  json_to_xml: 200
//	  text_to_yaml: 0
//	disable: [yaml-emitter]
//	builder:
//	  max_depth: 6
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"structured-sft/internal/builder"
	"structured-sft/internal/common"
	"structured-sft/internal/diagnostic"
	"structured-sft/internal/pipeline"
	"structured-sft/options"
)

// Limits of the numeric settings.
const (
	MaxWorkers  = 256
	MaxAttempts = 100
)

const (
	DefaultPack = "general"
	DefaultSeed = 42
)

// Config is one generation run.
type Config struct {
	Pack        string         `yaml:"pack"`
	Out         string         `yaml:"out,omitempty"`
	Seed        uint64         `yaml:"seed"`
	Strict      *bool          `yaml:"strict,omitempty"`
	Workers     int            `yaml:"workers"`
	MaxAttempts int            `yaml:"max_attempts"`
	Counts      map[string]int `yaml:"counts,omitempty"`
	Disable     []string       `yaml:"disable,omitempty"`
	Builder     Builder        `yaml:"builder,omitempty"`
}

// Builder tunes object generation.
type Builder struct {
	// MaxDepth bounds nesting of hard objects; zero keeps the default.
	MaxDepth int `yaml:"max_depth,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := base()
	applyDefaults(cfg)

	return cfg
}

func base() *Config {
	return &Config{
		Pack:        DefaultPack,
		Seed:        DefaultSeed,
		Workers:     pipeline.DefaultWorkers,
		MaxAttempts: pipeline.DefaultMaxAttempts,
	}
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data over the defaults. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := base()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// an empty document keeps the defaults
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills in values that depend on other fields.
func applyDefaults(cfg *Config) {
	if cfg.Out == "" {
		if p, err := pipeline.LookupPack(cfg.Pack); err == nil {
			cfg.Out = p.DefaultOut
		}
	}

	if cfg.Counts == nil {
		cfg.Counts = map[string]int{}
	}
}

// Validate checks the configuration against the pack registry.
func Validate(cfg *Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if cfg == nil {
		res.AddError("config_is_nil", "config is nil", "", "")
		return res
	}

	pack, err := pipeline.LookupPack(cfg.Pack)
	if err != nil {
		res.AddError("unknown_pack", err.Error(), "", "pack")
	}

	if cfg.Out == "" {
		res.AddError("missing_out", "output path is empty", "", "out")
	}

	if !common.IsInRange(1, cfg.Workers, MaxWorkers) {
		res.AddError("workers_out_of_range", fmt.Sprintf("workers must be in [1, %d], got %d", MaxWorkers, cfg.Workers), "", "workers")
	}

	if !common.IsInRange(1, cfg.MaxAttempts, MaxAttempts) {
		res.AddError("max_attempts_out_of_range", fmt.Sprintf("max_attempts must be in [1, %d], got %d", MaxAttempts, cfg.MaxAttempts), "", "max_attempts")
	}

	for _, sub := range slices.Sorted(maps.Keys(cfg.Counts)) {
		if err == nil {
			if _, ok := pack.Subcategory(sub); !ok {
				res.AddError("unknown_subcategory", pack.UnknownSubcategory(sub).Error(), sub, "counts")
			}
		}

		if n := cfg.Counts[sub]; n < 0 {
			res.AddError("negative_count", fmt.Sprintf("count must not be negative, got %d", n), sub, "counts")
		}
	}

	for _, name := range cfg.Disable {
		if _, err := options.ParseCapability(name); err != nil {
			res.AddError("unknown_capability", err.Error(), "", "disable")
		}
	}

	if d := cfg.Builder.MaxDepth; d != 0 && !common.IsInRange(builder.MinDepth, d, builder.MaxDepthCeiling) {
		res.AddError("max_depth_out_of_range",
			fmt.Sprintf("builder.max_depth must be in [%d, %d], got %d", builder.MinDepth, builder.MaxDepthCeiling, d), "", "builder.max_depth")
	}

	return res
}

// Capabilities returns every capability except the disabled ones.
func (c *Config) Capabilities() (options.CapabilityEnum, error) {
	caps := options.CapabilityAll

	for _, name := range c.Disable {
		flag, err := options.ParseCapability(name)
		if err != nil {
			return options.CapabilityNone, err
		}

		caps = caps.Without(flag)
	}

	return caps, nil
}

// SetPack switches to the named pack. An output path that was the previous
// pack's default follows the new pack.
func (c *Config) SetPack(name string) {
	if prev, err := pipeline.LookupPack(c.Pack); err == nil && c.Out == prev.DefaultOut {
		c.Out = ""
	}

	c.Pack = name
	applyDefaults(c)
}

// StrictFor returns the configured strictness, or the pack default when unset.
func (c *Config) StrictFor(pack pipeline.Pack) bool {
	if c.Strict != nil {
		return *c.Strict
	}

	return pack.Strict
}

// Jobs returns the pack's default jobs with the configured counts applied.
func (c *Config) Jobs(pack pipeline.Pack) []pipeline.Job {
	jobs := pack.DefaultJobs()
	for i := range jobs {
		if n, ok := c.Counts[jobs[i].Subcategory]; ok {
			jobs[i].Count = n
		}
	}

	return jobs
}
