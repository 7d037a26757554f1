package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"structured-sft/internal/jsonl"
	"structured-sft/internal/pipeline"
)

type focusFlags struct {
	inputs []string
	out    string
	seed   uint64
	counts map[string]*int
}

func newFocusCmd(a *app) *cobra.Command {
	f := &focusFlags{counts: map[string]*int{}}

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Sample the TOML subcategories of generated files into one file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFocus(cmd, f)
		},
	}

	var defaultInputs []string
	for _, p := range pipeline.Packs() {
		defaultInputs = append(defaultInputs, p.DefaultOut)
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&f.inputs, "inputs", defaultInputs, "Input JSONL files")
	flags.StringVarP(&f.out, "out", "o", jsonl.DefaultFocusOut, "Output JSONL path")
	flags.Uint64Var(&f.seed, "seed", jsonl.DefaultFocusSeed, "Sampling seed")

	defaults := jsonl.DefaultFocusCounts()
	for _, sub := range jsonl.FocusSubcategories {
		f.counts[sub] = flags.Int(flagName(sub), defaults[sub], "Records drawn from "+sub)
	}

	return cmd
}

// flagName turns a subcategory into its flag name, e.g. json-to-toml.
func flagName(subcategory string) string {
	return strings.ReplaceAll(subcategory, "_", "-")
}

func (a *app) runFocus(cmd *cobra.Command, f *focusFlags) error {
	counts := make(map[string]int, len(f.counts))
	for sub, n := range f.counts {
		counts[sub] = *n
	}

	res, err := jsonl.Focus(jsonl.FocusOptions{Inputs: f.inputs, Seed: f.seed, Counts: counts}, a.logger)
	if err != nil {
		return err
	}

	a.logDiagnostics(&res.Diagnostics)

	if err := jsonl.WriteFile(f.out, res.Records); err != nil {
		return err
	}

	a.logger.Info("focus pack written", zap.String("out", f.out), zap.Int("records", len(res.Records)))

	w := cmd.OutOrStdout()
	for _, sub := range jsonl.FocusSubcategories {
		fmt.Fprintf(w, "%-14s %d\n", sub, res.Counts[sub])
	}

	fmt.Fprintf(w, "wrote %d records to %s\n", len(res.Records), f.out)

	return nil
}
