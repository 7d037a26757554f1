package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"structured-sft/internal/jsonl"
	"structured-sft/internal/validate"
	"structured-sft/options"
)

type smokeFlags struct {
	strict  bool
	disable []string
}

func newSmokeCmd(a *app) *cobra.Command {
	f := &smokeFlags{}

	cmd := &cobra.Command{
		Use:   "smoke PATH",
		Short: "Re-validate every answer of a JSONL file",
		Long: `Smoke re-reads a JSONL file and parses every assistant answer as the target
format of its subcategory. It fails when any answer does not parse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSmoke(cmd, f, args[0])
		},
	}

	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject TOML answers when the TOML parser is unavailable")
	cmd.Flags().StringSliceVar(&f.disable, "disable", nil, "Capabilities to disable (yaml-parser, toml-parser)")

	return cmd
}

func (a *app) runSmoke(cmd *cobra.Command, f *smokeFlags, path string) error {
	caps := options.CapabilityAll

	for _, name := range f.disable {
		flag, err := options.ParseCapability(name)
		if err != nil {
			return err
		}

		caps = caps.Without(flag)
	}

	validators := validate.Resolve(caps, f.strict)
	for _, d := range validators.Degraded() {
		a.logger.Warn("validator degraded", zap.Stringer("degradation", d))
	}

	res, err := jsonl.Smoke(path, validators)
	if err != nil {
		return err
	}

	a.logDiagnostics(&res.Diagnostics)
	fmt.Fprintf(cmd.OutOrStdout(), "smoke: %s\n", res)

	if res.NG > 0 {
		return fmt.Errorf("smoke check failed: %d of %d answers do not parse", res.NG, res.Checked)
	}

	return nil
}
