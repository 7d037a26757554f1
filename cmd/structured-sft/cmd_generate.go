package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"structured-sft/internal/config"
	"structured-sft/internal/jsonl"
	"structured-sft/internal/pipeline"
	"structured-sft/internal/validate"
)

type generateFlags struct {
	config      string
	pack        string
	out         string
	seed        uint64
	counts      []string
	strict      bool
	workers     int
	maxAttempts int
	maxDepth    int
	disable     []string
	noSmoke     bool
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a pack of records into a JSONL file",
		Long: `Generate builds one random object per requested record, renders it in the
subcategory's source and target formats, validates the answer and writes the
accepted records in subcategory order.

Flags override the values of --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.config, "config", "c", "", "YAML run configuration")
	flags.StringVarP(&f.pack, "pack", "p", config.DefaultPack, "Pack to generate (general, hard, toml_aug)")
	flags.StringVarP(&f.out, "out", "o", "", "Output JSONL path (default: the pack's path)")
	flags.Uint64Var(&f.seed, "seed", config.DefaultSeed, "Run seed")
	flags.StringArrayVar(&f.counts, "count", nil, "Record count of one subcategory as sub=N (repeatable)")
	flags.BoolVar(&f.strict, "strict", false, "Reject TOML answers when the TOML parser is unavailable (default: the pack's)")
	flags.IntVarP(&f.workers, "workers", "w", pipeline.DefaultWorkers, "Parallel workers")
	flags.IntVar(&f.maxAttempts, "max-attempts", pipeline.DefaultMaxAttempts, "Seeds tried per record before it is given up")
	flags.IntVar(&f.maxDepth, "max-depth", 0, "Maximum nesting depth of hard objects (default: builder default)")
	flags.StringSliceVar(&f.disable, "disable", nil, "Capabilities to disable (yaml-emitter, yaml-parser, toml-parser)")
	flags.BoolVar(&f.noSmoke, "no-smoke", false, "Skip re-validating the written file")

	return cmd
}

// loadConfig reads the file at path, or returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.LoadFile(path)
}

// parseCounts parses repeated sub=N values.
func parseCounts(values []string) (map[string]int, error) {
	out := make(map[string]int, len(values))

	for _, v := range values {
		sub, n, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(sub) == "" {
			return nil, fmt.Errorf("invalid count %q: want sub=N", v)
		}

		count, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil, fmt.Errorf("invalid count %q: %w", v, err)
		}

		out[strings.TrimSpace(sub)] = count
	}

	return out, nil
}

// applyFlags overrides cfg with every flag set on the command line.
func (f *generateFlags) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("pack") {
		cfg.SetPack(f.pack)
	}

	if flags.Changed("out") {
		cfg.Out = f.out
	}

	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}

	if flags.Changed("strict") {
		cfg.Strict = &f.strict
	}

	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}

	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = f.maxAttempts
	}

	if flags.Changed("max-depth") {
		cfg.Builder.MaxDepth = f.maxDepth
	}

	if flags.Changed("disable") {
		cfg.Disable = f.disable
	}

	counts, err := parseCounts(f.counts)
	if err != nil {
		return err
	}

	for sub, n := range counts {
		cfg.Counts[sub] = n
	}

	return nil
}

func (a *app) runGenerate(cmd *cobra.Command, f *generateFlags) error {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}

	if err := f.applyFlags(cmd, cfg); err != nil {
		return err
	}

	if err := config.Validate(cfg).Error(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	pack, err := pipeline.LookupPack(cfg.Pack)
	if err != nil {
		return err
	}

	caps, err := cfg.Capabilities()
	if err != nil {
		return err
	}

	strict := cfg.StrictFor(pack)
	jobs := cfg.Jobs(pack)

	var active []string

	for _, j := range jobs {
		if j.Count > 0 {
			active = append(active, j.Subcategory)
		}
	}

	if len(active) > 0 {
		if err := validate.Preflight(caps, strict, pack.Formats(active...)); err != nil {
			return err
		}
	}

	opts := []pipeline.Option{pipeline.WithLogger(a.logger)}
	if cfg.Builder.MaxDepth > 0 {
		opts = append(opts, pipeline.WithMaxDepth(cfg.Builder.MaxDepth))
	}

	g := pipeline.NewGenerator(pack, caps, strict, opts...)

	a.logger.Debug("capabilities resolved",
		zap.String("pack", g.Pack().Name),
		zap.Stringer("capabilities", caps),
		zap.Bool("strict", g.Strict()))

	report, err := g.Run(cmd.Context(), jobs, pipeline.RunOptions{
		Seed:        cfg.Seed,
		Workers:     cfg.Workers,
		MaxAttempts: cfg.MaxAttempts,
	})
	if err != nil {
		return err
	}

	a.logDiagnostics(&report.Diagnostics)

	if err := jsonl.WriteFile(cfg.Out, report.Records); err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	for _, s := range report.Stats {
		fmt.Fprintf(w, "%-14s requested=%d accepted=%d rejected=%d soft_passed=%d\n",
			s.Subcategory, s.Requested, s.Accepted, s.Rejected, s.SoftPassed)
	}

	fmt.Fprintf(w, "wrote %d records to %s\n", len(report.Records), cfg.Out)

	if f.noSmoke {
		return nil
	}

	res, err := jsonl.Smoke(cfg.Out, validate.Resolve(caps, strict))
	if err != nil {
		return err
	}

	a.logDiagnostics(&res.Diagnostics)
	fmt.Fprintf(w, "smoke: %s\n", res)

	return nil
}
