// Package diagnostic collects run-level errors, warnings and notes for a
// generation run.
//
// Key capabilities:
//   - Degraded validators resolved at startup
//   - Rejected candidates and retry exhaustion per subcategory
//   - Smoke check failures of written records
//   - Missing inputs of the focus pack
package diagnostic
