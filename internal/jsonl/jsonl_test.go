package jsonl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"structured-sft/internal/diagnostic"
	"structured-sft/internal/record"
	"structured-sft/internal/validate"
	"structured-sft/options"
)

func rec(subcategory, answer string) record.Record {
	return record.New("C_X", subcategory, record.TaskTransform, "dummy", "prompt for "+subcategory, answer)
}

func TestEncode_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer

	records := []record.Record{rec("json_to_xml", "<root>a &amp; b</root>"), rec("json_to_toml", "a = \"<x>\"\n")}
	require.NoError(t, Encode(&buf, records))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	// no HTML escaping of markup
	assert.Contains(t, lines[0], `"<root>a &amp; b</root>"`)
	assert.True(t, strings.HasPrefix(lines[0], `{"id":"`), lines[0])
}

func TestWriteFile_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.jsonl")
	records := []record.Record{rec("json_to_xml", "<root/>"), rec("xml_to_yaml", "a: 1\n")}

	require.NoError(t, WriteFile(path, records))

	got, err := ReadFile(path)
	require.NoError(t, err)

	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	// a second write replaces the file
	require.NoError(t, WriteFile(path, records[:1]))

	got, err = ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDecode_SkipsBlankLines(t *testing.T) {
	input := "\n" + `{"id":"x","subcategory":"json_to_xml","messages":[]}` + "\n   \n"

	got, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
}

func TestDecode_ReportsLine(t *testing.T) {
	_, err := Decode(strings.NewReader("{}\n\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestSmoke(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smoke.jsonl")

	bad := rec("text_to_yaml", "a: 1")
	bad.Messages = bad.Messages[:1]

	records := []record.Record{
		rec("json_to_xml", "<root><a>1</a></root>"),
		rec("xml_to_yaml", "items:\n  - a: 1\n"),
		rec("text_to_toml", "[[items]]\na = 1\n"),
		rec("json_to_toml", "a = {b = 1"),
		rec("csv_to_xml", "<root>"),
		rec("summary", "anything"),
		bad,
	}
	require.NoError(t, WriteFile(path, records))

	res, err := Smoke(path, validate.Resolve(options.CapabilityAll, true))
	require.NoError(t, err)

	assert.Equal(t, 7, res.Checked)
	assert.Equal(t, 4, res.OK)
	assert.Equal(t, 3, res.NG)
	assert.InDelta(t, 4.0/7.0, res.PassRate(), 1e-9)
	assert.Equal(t, "checked=7 ok=4 ng=3 pass_rate=0.571", res.String())

	require.Len(t, res.Diagnostics.Errors, 3)
	assert.Equal(t, diagnostic.CodeSmokeFailure, res.Diagnostics.Errors[0].Code)
	assert.Equal(t, "json_to_toml", res.Diagnostics.Errors[0].Subcategory)
	assert.Equal(t, diagnostic.CodeBadRecord, res.Diagnostics.Errors[2].Code)
}

func TestSmoke_MissingFile(t *testing.T) {
	_, err := Smoke(filepath.Join(t.TempDir(), "nope.jsonl"), validate.Resolve(options.CapabilityAll, true))
	require.Error(t, err)
}

func TestSmokeResult_EmptyPassRate(t *testing.T) {
	assert.Zero(t, SmokeResult{}.PassRate())
}

func writeRecords(t *testing.T, name string, subs map[string]int) string {
	t.Helper()

	var records []record.Record

	for _, sub := range append([]string{"json_to_xml"}, FocusSubcategories...) {
		for i := range subs[sub] {
			records = append(records, rec(sub, strings.Repeat("x", i+1)))
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, WriteFile(path, records))

	return path
}

func TestFocus(t *testing.T) {
	general := writeRecords(t, "general.jsonl", map[string]int{"json_to_xml": 5, "json_to_toml": 4, "text_to_toml": 2})
	hard := writeRecords(t, "hard.jsonl", map[string]int{"text_to_toml": 6})
	missing := filepath.Join(t.TempDir(), "missing.jsonl")

	opts := FocusOptions{
		Inputs: []string{general, missing, hard},
		Seed:   DefaultFocusSeed,
		Counts: map[string]int{"json_to_toml": 3, "yaml_to_toml": 10, "text_to_toml": 5},
	}

	res, err := Focus(opts, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"json_to_toml": 3, "yaml_to_toml": 0, "text_to_toml": 5}, res.Counts)
	require.Len(t, res.Records, 8)

	// buckets are written in order
	for i, r := range res.Records {
		if i < 3 {
			assert.Equal(t, "json_to_toml", r.Subcategory)
		} else {
			assert.Equal(t, "text_to_toml", r.Subcategory)
		}
	}

	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, missing, res.Diagnostics.Warnings[0].Detail)

	again, err := Focus(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, res.Records, again.Records)
}

func TestFocus_SmallBucketTakenWhole(t *testing.T) {
	path := writeRecords(t, "in.jsonl", map[string]int{"yaml_to_toml": 2})

	res, err := Focus(FocusOptions{Inputs: []string{path}, Counts: DefaultFocusCounts()}, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	answer0, _ := res.Records[0].Answer()
	assert.Equal(t, "x", answer0)
}

func TestFocus_Errors(t *testing.T) {
	_, err := Focus(FocusOptions{Counts: map[string]int{"text_to_toml": -1}}, nil)
	require.Error(t, err)

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.jsonl")
	require.NoError(t, os.WriteFile(broken, []byte("not json\n"), 0o644))

	_, err = Focus(FocusOptions{Inputs: []string{broken}}, nil)
	require.Error(t, err)
}
