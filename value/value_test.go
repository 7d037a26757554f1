package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Value {
	item := NewMap().
		Set("name", Str("a")).
		Set("count", Int(3)).
		Set("dimensions", Mapping(NewMap().Set("height_cm", Float(12)).Set("width_cm", Float(4.5)))).
		Set("tags", Seq(Str("x"), Str("y"))).
		Set("meta", Seq(
			Mapping(NewMap().Set("key", Str("origin")).Set("value", Str("Nova"))),
			Mapping(NewMap().Set("key", Str("year")).Set("value", Int(1999))),
		)).
		Set("notes", Null())

	return Mapping(NewMap().Set("items", Seq(Mapping(item))))
}

func TestMap_KeepsInsertionOrder(t *testing.T) {
	m := NewMap().Set("b", Int(1)).Set("a", Int(2)).Set("b", Int(3))

	assert.Equal(t, []string{"b", "a"}, m.Keys())

	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Int())

	var nilMap *Map
	assert.Equal(t, 0, nilMap.Len())
	assert.Nil(t, nilMap.Keys())
	assert.False(t, nilMap.Has("a"))
}

func TestMap_CloneIsIndependent(t *testing.T) {
	m := NewMap().Set("a", Int(1))
	c := m.Clone().Set("b", Int(2))

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value

	assert.True(t, v.IsNull())
	assert.Equal(t, "null", v.JSON())
	assert.Equal(t, "", v.Text())
}

func TestValue_Text(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Bool(true), "true"},
		{Int(-4), "-4"},
		{Float(3), "3.0"},
		{Float(0.25), "0.25"},
		{Float(math.Inf(-1)), "-inf"},
		{Str("plain"), "plain"},
		{Seq(Int(1), Str("a")), `[1, "a"]`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.Text())
	}
}

func TestValue_JSON(t *testing.T) {
	v := sample()

	assert.Equal(t,
		`{"items": [{"name": "a", "count": 3, "dimensions": {"height_cm": 12.0, "width_cm": 4.5}, `+
			`"tags": ["x", "y"], "meta": [{"key": "origin", "value": "Nova"}, {"key": "year", "value": 1999}], "notes": null}]}`,
		v.JSON())

	assert.Equal(t, `"<b>&é"`, Str("<b>&é").JSON())
	assert.Equal(t, `{"items": []}`, Mapping(NewMap().Set("items", Seq())).JSON())
}

func TestValue_JSONEscapesYAMLUnprintable(t *testing.T) {
	v := Str("a\x7fb\u0085c\uffffd\u00e9")

	assert.Equal(t, `"a\u007fb\u0085c\uffffdé"`, v.JSON())

	var back string
	require.NoError(t, json.Unmarshal([]byte(v.JSON()), &back))
	assert.Equal(t, v.Str(), back)
}

func TestValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sample())
	require.NoError(t, err)

	var got any
	require.NoError(t, json.Unmarshal(data, &got))

	want := map[string]any{"items": []any{map[string]any{
		"name":       "a",
		"count":      3.0,
		"dimensions": map[string]any{"height_cm": 12.0, "width_cm": 4.5},
		"tags":       []any{"x", "y"},
		"meta": []any{
			map[string]any{"key": "origin", "value": "Nova"},
			map[string]any{"key": "year", "value": 1999.0},
		},
		"notes": nil,
	}}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MarshalJSON mismatch (-want +got):\n%s", diff)
	}

	_, err = json.Marshal(Seq(Float(math.NaN())))
	require.Error(t, err)
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth(Int(1)))
	assert.Equal(t, 1, Depth(Seq()))
	assert.Equal(t, 2, Depth(Mapping(NewMap().Set("items", Seq()))))
	assert.Equal(t, 5, Depth(sample()))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(sample(), sample()))
	assert.False(t, Equal(Int(1), Float(1)))

	ab := Mapping(NewMap().Set("a", Int(1)).Set("b", Int(2)))
	ba := Mapping(NewMap().Set("b", Int(2)).Set("a", Int(1)))
	assert.False(t, Equal(ab, ba))
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want []Segment
	}{
		{"name", []Segment{{Key: "name"}}},
		{"a.b", []Segment{{Key: "a"}, {Key: "b"}}},
		{"meta[1].value", []Segment{{Key: "meta"}, {Index: 1, IsIndex: true}, {Key: "value"}}},
		{"grid[0][2]", []Segment{{Key: "grid"}, {Index: 0, IsIndex: true}, {Index: 2, IsIndex: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Segments)
			assert.Equal(t, tt.in, p.String())
		})
	}

	for _, bad := range []string{"", "a..b", "[0]", "a[", "a[x]", "a[-1]", "a[1"} {
		_, err := ParsePath(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolve(t *testing.T) {
	v := sample()

	assert.Equal(t, "a", Resolve(v, MustParsePath("items[0].name")).Str())
	assert.Equal(t, int64(1999), Resolve(v, MustParsePath("items[0].meta[1].value")).Int())
	assert.Equal(t, "", Resolve(v, MustParsePath("items[3].name")).Str())
	assert.Equal(t, "", Resolve(v, MustParsePath("items[0].missing")).Str())
}

func TestProject(t *testing.T) {
	item := sample().Map()
	first, _ := item.Get("items")

	got := Project(first.Items()[0], []Path{
		MustParsePath("meta[1].value"),
		MustParsePath("name"),
		MustParsePath("dimensions.width_cm"),
	})

	assert.Equal(t,
		`{"meta": [{}, {"value": 1999}], "name": "a", "dimensions": {"width_cm": 4.5}}`,
		got.JSON())
}

func TestEnumeratePaths(t *testing.T) {
	items, _ := sample().Map().Get("items")

	var got []string
	for _, p := range EnumeratePaths(items.Items()[0], 2) {
		got = append(got, p.String())
	}

	assert.Equal(t, []string{
		"name", "count",
		"dimensions.height_cm", "dimensions.width_cm",
		"tags[0]", "tags[1]",
		"notes",
	}, got)
}
