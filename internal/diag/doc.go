// Package diag defines the diagnostic model shared by the decode and render
// layers.
//
// # Purpose
//
//   - Provide deterministic data structures that capture formatting findings
//     produced from the formatter's replacement report.
//   - Offer a light-weight bounded accumulator (Bag) that lets the driver
//     collect findings without coupling to the rendering layer.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// orchestration in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the finding.
//
// Formatting findings (FmtReplaceSpan) are errors: the file does not conform.
// Report-level observations (an out-of-order report, a file the formatter
// could not fully parse) are warnings and never affect the rendered blocks.
//
// Keep the data model deterministic: any new field should stay serialisable
// and side-effect free so tests can snapshot diagnostics verbatim.
package diag
