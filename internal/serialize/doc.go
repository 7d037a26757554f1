// Package serialize renders generic data values into the target grammars.
//
// Every serializer is deterministic and keeps mapping insertion order.
//
// Rendering rules:
//   - XML: a <root> container; sequences repeat a fixed <item> child; the
//     general variant renders one fixed level, the hard variant recurses.
//   - TOML: nested mappings become [a.b] tables, sequences of mappings become
//     [[a.b]] arrays of tables, scalar sequences become inline arrays. Inline
//     tables are never produced.
//   - YAML: block style from a yaml.v3 node tree, or compact flow-style JSON
//     when the block emitter is not available.
package serialize
