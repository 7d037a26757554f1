package prompt

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"structured-sft/value"
)

// FallbackAttributes are requested when an item has no keys to offer.
var FallbackAttributes = []string{"name", "value"}

// CSV renders the items of {"items": [...]} as a table. Columns are the union
// of item keys in first-seen order; missing cells are empty.
func CSV(v value.Value) (string, error) {
	items, _ := v.Map().Get("items")

	var columns []string

	for _, item := range items.Items() {
		for _, k := range item.Map().Keys() {
			if !slices.Contains(columns, k) {
				columns = append(columns, k)
			}
		}
	}

	var sb strings.Builder

	w := csv.NewWriter(&sb)
	if err := w.Write(columns); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, item := range items.Items() {
		m := item.Map()
		if m == nil {
			continue
		}

		row := make([]string, len(columns))
		for i, col := range columns {
			cell, _ := m.Get(col)
			row[i] = cell.Text()
		}

		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}

	return sb.String(), nil
}

// AttributeText renders "path: value | path: value" for one item. Containers
// are written as JSON, missing paths as empty text.
func AttributeText(item value.Value, paths []value.Path) string {
	pairs := make([]string, len(paths))
	for i, p := range paths {
		pairs[i] = p.String() + ": " + value.Resolve(item, p).Text()
	}

	return strings.Join(pairs, " | ")
}

// TopLevelKeys returns up to limit top-level keys of item as paths.
func TopLevelKeys(item value.Value, limit int) []value.Path {
	keys := item.Map().Keys()
	keys = keys[:min(limit, len(keys))]

	if len(keys) == 0 {
		keys = FallbackAttributes
	}

	paths := make([]value.Path, len(keys))
	for i, k := range keys {
		paths[i] = value.Path{Segments: []value.Segment{{Key: k}}}
	}

	return paths
}

// pickDepth bounds how far PickPaths looks into an item: nested mappings and
// scalar sequences, but not the mappings inside sequences.
const pickDepth = 2

// NonNull keeps the leaves a format without null can still write.
func NonNull(v value.Value) bool {
	return v.Kind() != value.KindNull
}

// PickPaths draws up to k scalar paths from item: nested paths fill at most
// half of the slots, top-level scalars fill the rest. When keep is not nil,
// only paths whose leaf it accepts are candidates.
func PickPaths(rng *rand.Rand, item value.Value, k int, keep func(value.Value) bool) []value.Path {
	candidates := value.EnumeratePaths(item, pickDepth)
	if keep != nil {
		candidates = slices.DeleteFunc(candidates, func(p value.Path) bool {
			return !keep(value.Resolve(item, p))
		})
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	var nested, top []value.Path

	for _, p := range candidates {
		if p.IsNested() {
			nested = append(nested, p)
		} else {
			top = append(top, p)
		}
	}

	out := append([]value.Path(nil), nested[:min(k/2, len(nested))]...)
	out = append(out, top[:min(k-len(out), len(top))]...)

	if len(out) == 0 {
		return candidates[:min(k, len(candidates))]
	}

	return out
}

// PathStrings renders paths for the ATTRIBUTES line.
func PathStrings(paths []value.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}

	return out
}
