package serialize

import "structured-sft/value"

// DispatcherEnum classifies how a mapping entry is laid out in TOML.
type DispatcherEnum int

const (
	DispatcherUnknown    DispatcherEnum = iota
	DispatcherOmit                      // null: TOML has no null, the key is left out
	DispatcherScalar                    // key = value
	DispatcherArray                     // key = [ ... ], no mapping anywhere inside
	DispatcherTable                     // [a.b]
	DispatcherTableArray                // [[a.b]], every element is a mapping
)

// Dispatch picks the TOML layout for v. Sequences that mix mappings with
// other values, or hide mappings inside inner sequences, are DispatcherUnknown.
func Dispatch(v value.Value) DispatcherEnum {
	switch v.Kind() {
	case value.KindNull:
		return DispatcherOmit
	case value.KindMapping:
		return DispatcherTable
	case value.KindSequence:
		items := v.Items()
		if len(items) == 0 {
			return DispatcherArray
		}

		if allMappings(items) {
			return DispatcherTableArray
		}

		if containsMapping(v) {
			return DispatcherUnknown
		}

		return DispatcherArray
	default:
		return DispatcherScalar
	}
}

func allMappings(items []value.Value) bool {
	for _, item := range items {
		if item.Kind() != value.KindMapping {
			return false
		}
	}

	return true
}

func containsMapping(v value.Value) bool {
	switch v.Kind() {
	case value.KindMapping:
		return true
	case value.KindSequence:
		for _, item := range v.Items() {
			if containsMapping(item) {
				return true
			}
		}
	}

	return false
}
