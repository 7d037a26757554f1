package jsonl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"structured-sft/internal/builder"
	"structured-sft/internal/diagnostic"
	"structured-sft/internal/logging"
	"structured-sft/internal/record"
)

// FocusSubcategories are the buckets of the TOML focus pack, in output order.
var FocusSubcategories = []string{"json_to_toml", "yaml_to_toml", "text_to_toml"}

// Focus pack defaults.
const (
	DefaultFocusOut  = "outputs/sft_toml_focus.jsonl"
	DefaultFocusSeed = 42
)

// DefaultFocusCounts returns the default sample size per bucket.
func DefaultFocusCounts() map[string]int {
	return map[string]int{"json_to_toml": 300, "yaml_to_toml": 300, "text_to_toml": 600}
}

type FocusOptions struct {
	Inputs []string
	Seed   uint64
	// Counts is the number of records drawn per subcategory.
	Counts map[string]int
}

type FocusResult struct {
	Records []record.Record
	// Counts is the number of records taken per subcategory.
	Counts      map[string]int
	Diagnostics diagnostic.Diagnostics
}

// Focus pools the records of every input, buckets the TOML subcategories and
// draws up to the requested count from each bucket with a seeded generator.
// A bucket smaller than its count is taken whole. Missing inputs are skipped
// with a warning.
func Focus(opts FocusOptions, logger *zap.Logger) (*FocusResult, error) {
	logger = logging.Or(logger)

	for _, sub := range FocusSubcategories {
		if k := opts.Counts[sub]; k < 0 {
			return nil, fmt.Errorf("focus count for %s must not be negative: %d", sub, k)
		}
	}

	res := &FocusResult{Counts: map[string]int{}}
	buckets := map[string][]record.Record{}

	for _, path := range opts.Inputs {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			logger.Debug("skipping missing focus input", zap.String("path", path))
			res.Diagnostics.AddWarning(diagnostic.CodeMissingInput, "input does not exist", "", path)

			continue
		}

		records, err := ReadFile(path)
		if err != nil {
			return nil, err
		}

		for _, r := range records {
			buckets[r.Subcategory] = append(buckets[r.Subcategory], r)
		}
	}

	rng := builder.NewRand(opts.Seed)

	for _, sub := range FocusSubcategories {
		k := opts.Counts[sub]
		bucket := buckets[sub]

		picked := bucket
		if len(bucket) > k {
			picked = make([]record.Record, 0, k)
			for _, i := range rng.Perm(len(bucket))[:k] {
				picked = append(picked, bucket[i])
			}
		}

		res.Records = append(res.Records, picked...)
		res.Counts[sub] = len(picked)
	}

	return res, nil
}
