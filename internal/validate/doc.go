// Package validate checks serializer output by parsing it back.
//
// A Set is resolved once from the available capabilities. When a parser is
// missing, its validator is replaced by a stand-in with a fixed verdict:
// YAML soft-passes, TOML soft-passes or rejects everything depending on
// strictness. Validators never panic on malformed input; it is simply
// Rejected.
package validate
