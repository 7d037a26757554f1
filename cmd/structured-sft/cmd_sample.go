package main

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"structured-sft/internal/config"
	"structured-sft/internal/jsonl"
	"structured-sft/internal/pipeline"
	"structured-sft/internal/record"
	"structured-sft/options"
	"structured-sft/value"
)

const defaultSampleAttempts = 10

type sampleFlags struct {
	pack        string
	subcategory string
	seed        uint64
	index       int
	attempts    int
	dump        bool
}

// dumper prints maps in key order so dumps are stable between runs.
var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

func newSampleCmd(a *app) *cobra.Command {
	f := &sampleFlags{}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print one record of a subcategory",
		Long: `Sample generates the record a generate run would produce for one
subcategory and index, and prints it as a JSON line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSample(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.pack, "pack", "p", config.DefaultPack, "Pack of the subcategory")
	flags.StringVarP(&f.subcategory, "subcategory", "s", "", "Subcategory to sample, e.g. json_to_xml")
	flags.Uint64Var(&f.seed, "seed", config.DefaultSeed, "Run seed")
	flags.IntVar(&f.index, "index", 0, "Record index within the subcategory")
	flags.IntVar(&f.attempts, "attempts", defaultSampleAttempts, "Seeds tried before giving up")
	flags.BoolVar(&f.dump, "dump", false, "Also dump the generated object")

	_ = cmd.MarkFlagRequired("subcategory")

	return cmd
}

func (a *app) runSample(cmd *cobra.Command, f *sampleFlags) error {
	pack, err := pipeline.LookupPack(f.pack)
	if err != nil {
		return err
	}

	g := pipeline.NewGenerator(pack, options.CapabilityAll, pack.Strict, pipeline.WithLogger(a.logger))

	for attempt := range max(1, f.attempts) {
		req, err := g.NewRequest(f.subcategory, pipeline.DeriveSeed(f.seed, pack.Name, f.subcategory, f.index, attempt))
		if err != nil {
			return err
		}

		s, err := g.Generate(req)
		if errors.Is(err, pipeline.ErrRejected) {
			continue
		}

		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if err := jsonl.Encode(w, []record.Record{s.Record}); err != nil {
			return err
		}

		if f.dump {
			dumper.Fdump(w, value.Plain(s.Value))
		}

		return nil
	}

	return fmt.Errorf("%s/%s: no accepted record in %d attempts", pack.Name, f.subcategory, max(1, f.attempts))
}
