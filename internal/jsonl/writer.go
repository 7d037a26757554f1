package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"structured-sft/internal/record"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Encode writes one record per line. Text is not HTML-escaped.
func Encode(w io.Writer, records []record.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}

	return nil
}

// WriteFile replaces path with the records, creating parent directories.
func WriteFile(path string, records []record.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	w := bufio.NewWriter(f)

	if err := Encode(w, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return nil
}
