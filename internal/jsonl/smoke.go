package jsonl

import (
	"fmt"

	"structured-sft/internal/diagnostic"
	"structured-sft/internal/validate"
	"structured-sft/options"
)

// SmokeResult counts the outcome of re-validating a written file.
type SmokeResult struct {
	Checked     int
	OK          int
	NG          int
	Diagnostics diagnostic.Diagnostics
}

// PassRate is OK over Checked; an empty file has rate 0.
func (r SmokeResult) PassRate() float64 {
	return float64(r.OK) / float64(max(1, r.Checked))
}

func (r SmokeResult) String() string {
	return fmt.Sprintf("checked=%d ok=%d ng=%d pass_rate=%.3f", r.Checked, r.OK, r.NG, r.PassRate())
}

// Smoke re-reads path and validates every assistant answer as the target
// format of its subcategory. Records whose subcategory names no target format
// are counted as ok.
func Smoke(path string, validators *validate.Set) (SmokeResult, error) {
	records, err := ReadFile(path)
	if err != nil {
		return SmokeResult{}, err
	}

	var res SmokeResult

	for i, r := range records {
		res.Checked++
		where := fmt.Sprintf("%s record %d", path, i+1)

		answer, ok := r.Answer()
		if !ok {
			res.NG++
			res.Diagnostics.AddError(diagnostic.CodeBadRecord, "last message is not the assistant answer", r.Subcategory, where)

			continue
		}

		f, known := options.FormatOfSubcategory(r.Subcategory)
		if !known {
			res.OK++
			continue
		}

		if v := validators.Validate(f, answer); !v.OK() {
			res.NG++
			res.Diagnostics.AddError(diagnostic.CodeSmokeFailure,
				fmt.Sprintf("%s answer %s does not parse", f, r.ID), r.Subcategory, where)

			continue
		}

		res.OK++
	}

	return res, nil
}
