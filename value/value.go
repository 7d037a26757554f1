// Package value provides the generic data value every serializer consumes:
// a tagged union over null, booleans, integers, floats, strings, sequences and
// insertion-ordered mappings.
//
// Values are plain trees. Serializers switch on Kind explicitly instead of
// reflecting over Go types, so every format sees exactly the same shape.
package value

import (
	"math"
	"strconv"
	"strings"
)

// Value is a single node of a generic data tree. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	seq  []Value
	m    *Map
}

func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Str(s string) Value { return Value{kind: KindString, s: s} }
func Mapping(m *Map) Value {
	if m == nil {
		m = NewMap()
	}

	return Value{kind: KindMapping, m: m}
}

// Seq builds a sequence. A call without arguments yields an empty, non-nil sequence.
func Seq(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindSequence, seq: items}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) Bool() bool { return v.b }
func (v Value) Int() int64 { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Str() string { return v.s }

// Items returns the elements of a sequence, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}

	return v.seq
}

// Map returns the mapping of a mapping value, or nil for any other kind.
func (v Value) Map() *Map {
	if v.kind != KindMapping {
		return nil
	}

	return v.m
}

// Len returns the element count of a container and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return v.m.Len()
	default:
		return 0
	}
}

// Text renders a scalar the way it appears as element or cell text:
// null is empty, floats always keep a fractional part, containers fall back
// to their JSON form.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return FormatFloat(v.f)
	case KindString:
		return v.s
	default:
		return v.JSON()
	}
}

// String implements fmt.Stringer with the JSON form.
func (v Value) String() string {
	return v.JSON()
}

// FormatFloat prints f in the shortest decimal form that still reads back as
// a float: "3.0" rather than "3". Non-finite values use nan, inf and -inf.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// Depth returns the number of nested container levels; scalars have depth 0.
func Depth(v Value) int {
	deepest := 0

	switch v.kind {
	case KindSequence:
		for _, item := range v.seq {
			deepest = max(deepest, Depth(item))
		}
	case KindMapping:
		for _, e := range v.m.Entries() {
			deepest = max(deepest, Depth(e.Value))
		}
	default:
		return 0
	}

	return deepest + 1
}

// Equal reports whether a and b have the same shape, the same scalars and
// the same mapping key order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}

		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		ae, be := a.m.Entries(), b.m.Entries()
		if len(ae) != len(be) {
			return false
		}

		for i := range ae {
			if ae[i].Key != be[i].Key || !Equal(ae[i].Value, be[i].Value) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Plain converts v into the untyped Go shape that decoders produce:
// map[string]any, []any, int64, float64, bool, string and nil.
func Plain(v Value) any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = Plain(item)
		}

		return out
	case KindMapping:
		out := make(map[string]any, v.m.Len())
		for _, e := range v.m.Entries() {
			out[e.Key] = Plain(e.Value)
		}

		return out
	default:
		return nil
	}
}
