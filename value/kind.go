package value

//go:generate go tool stringer -type=Kind -output=kind_string.go

type Kind int

const (
	KindNull Kind = iota // zero value, so an uninitialized Value is null
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k Kind) IsScalar() bool {
	switch k {
	default:
		return false
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return true
	}
}
