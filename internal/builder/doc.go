// Package builder draws random generic data values for training examples.
//
// Every object has the shape {"items": [ {key: scalar-or-nested, ...}, ... ]}.
//
// The general variant produces a few flat items with 2–6 scalar fields whose
// keys mix snake_case and camelCase. The hard variant adds, each with its own
// probability:
//   - nested mappings (dimensions, flags)
//   - scalar sequences (tags) and sequences of mappings (meta, components)
//   - sparse fields that may be empty or null (notes)
//   - empty containers (attachments, extra)
//   - recursive sub-items (variants), bounded by Options.MaxDepth
//
// Randomness always comes from the *rand.Rand handed to New; nothing reads a
// global source, so a seed fully determines the output.
package builder
