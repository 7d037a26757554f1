// Package pipeline turns generation requests into records.
//
// A request is handled as build, serialize, validate, assemble. A candidate
// that fails serialization or validation is rejected with ErrRejected; it is
// never written. Run fans requests out over a bounded worker group. Every
// request draws from its own generator, seeded by hashing the run seed with
// the pack, subcategory, index and attempt, so the output does not depend on
// the number of workers or their scheduling.
package pipeline
