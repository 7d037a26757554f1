package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"structured-sft/internal/record"
)

// maxLineSize bounds one record line.
const maxLineSize = 64 << 20

// Decode reads records, skipping blank lines.
func Decode(r io.Reader) ([]record.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	var (
		out  []record.Record
		line int
	)

	for sc.Scan() {
		line++

		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}

		var rec record.Record
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		out = append(out, rec)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}

	return out, nil
}

// ReadFile reads every record of path.
func ReadFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return records, nil
}
