// Package jsonl reads and writes record files, one JSON object per line, and
// implements the operations that work on written files: the smoke check and
// the TOML focus pack.
package jsonl
