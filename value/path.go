package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a mapping key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path addresses a node inside a value, e.g. "dimensions.height_cm" or "meta[1].value".
type Path struct {
	Segments []Segment
}

// ParsePath parses an attribute path.
// Supports: "name", "a.b", "tags[0]", "meta[1].value", "grid[0][2]".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return Path{}, errors.New("empty path")
	}

	var segments []Segment

	for part := range strings.SplitSeq(path, ".") {
		name, rest, bracket := strings.Cut(part, "[")
		if name == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		if bracket && rest == "" {
			return Path{}, fmt.Errorf("invalid path %q: unclosed index", path)
		}

		segments = append(segments, Segment{Key: name})

		if rest == "" {
			continue
		}

		// rest holds "1]" or "1][2]" once the first bracket is consumed
		for _, idx := range strings.Split(strings.TrimSuffix(rest, "]"), "][") {
			n, err := strconv.Atoi(idx)
			if err != nil || n < 0 {
				return Path{}, fmt.Errorf("invalid path %q: bad index %q", path, idx)
			}

			segments = append(segments, Segment{Index: n, IsIndex: true})
		}

		if !strings.HasSuffix(rest, "]") {
			return Path{}, fmt.Errorf("invalid path %q: unclosed index", path)
		}
	}

	return Path{Segments: segments}, nil
}

// MustParsePath is ParsePath for literals known to be valid.
func MustParsePath(path string) Path {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}

	return p
}

// String renders the path back into its textual form.
func (p Path) String() string {
	var sb strings.Builder

	for i, seg := range p.Segments {
		if seg.IsIndex {
			sb.WriteString("[" + strconv.Itoa(seg.Index) + "]")
			continue
		}

		if i > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(seg.Key)
	}

	return sb.String()
}

// IsNested reports whether the path goes below the top level.
func (p Path) IsNested() bool {
	return len(p.Segments) > 1
}

func (p Path) child(seg Segment) Path {
	segments := make([]Segment, len(p.Segments), len(p.Segments)+1)
	copy(segments, p.Segments)

	return Path{Segments: append(segments, seg)}
}

// Resolve walks p through v. A path that leaves the tree resolves to the empty string.
func Resolve(v Value, p Path) Value {
	cur := v

	for _, seg := range p.Segments {
		if seg.IsIndex {
			items := cur.Items()
			if seg.Index >= len(items) {
				return Str("")
			}

			cur = items[seg.Index]

			continue
		}

		next, ok := cur.Map().Get(seg.Key)
		if !ok {
			return Str("")
		}

		cur = next
	}

	return cur
}

// Project builds a new mapping holding only the requested paths of v, each set
// to its resolved value. Missing sequence slots are padded with empty strings,
// or with empty mappings when the path continues with a key below them.
func Project(v Value, paths []Path) Value {
	out := Mapping(NewMap())
	for _, p := range paths {
		out = setPath(out, p.Segments, Resolve(v, p))
	}

	return out
}

func setPath(cur Value, segs []Segment, leaf Value) Value {
	if len(segs) == 0 {
		return leaf
	}

	seg := segs[0]

	if seg.IsIndex {
		items := append([]Value(nil), cur.Items()...)
		for len(items) <= seg.Index {
			items = append(items, padding(segs[1:]))
		}

		items[seg.Index] = setPath(items[seg.Index], segs[1:], leaf)

		return Seq(items...)
	}

	m := NewMap()
	if cur.Kind() == KindMapping {
		m = cur.m.Clone()
	}

	child, _ := m.Get(seg.Key)
	m.Set(seg.Key, setPath(child, segs[1:], leaf))

	return Mapping(m)
}

func padding(rest []Segment) Value {
	if len(rest) > 0 && !rest[0].IsIndex {
		return Mapping(NewMap())
	}

	return Str("")
}

// EnumeratePaths lists the paths of scalar leaves in v, descending at most
// maxDepth levels and sampling only the first two elements of each sequence.
// Paths come out in first-seen order without duplicates.
func EnumeratePaths(v Value, maxDepth int) []Path {
	var (
		out  []Path
		seen = map[string]struct{}{}
	)

	var walk func(prefix Path, x Value, depth int)
	walk = func(prefix Path, x Value, depth int) {
		if depth > maxDepth {
			return
		}

		switch x.Kind() {
		case KindMapping:
			for _, e := range x.m.Entries() {
				walk(prefix.child(Segment{Key: e.Key}), e.Value, depth+1)
			}
		case KindSequence:
			for i, item := range x.seq[:min(2, len(x.seq))] {
				walk(prefix.child(Segment{Index: i, IsIndex: true}), item, depth+1)
			}
		default:
			if len(prefix.Segments) == 0 {
				return
			}

			key := prefix.String()
			if _, ok := seen[key]; ok {
				return
			}

			seen[key] = struct{}{}
			out = append(out, prefix)
		}
	}

	walk(Path{}, v, 0)

	return out
}
