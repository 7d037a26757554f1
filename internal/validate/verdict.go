package validate

//go:generate go tool stringer -type=Verdict -trimprefix=Verdict -output=verdict_string.go

// Verdict is the outcome of validating one candidate answer.
type Verdict int

const (
	VerdictRejected Verdict = iota
	VerdictAccepted
	VerdictSoftPass // accepted only because no parser was available to check
)

// OK reports whether the candidate may be written out.
func (v Verdict) OK() bool {
	return v == VerdictAccepted || v == VerdictSoftPass
}
