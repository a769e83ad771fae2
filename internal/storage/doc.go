// Package storage persists chunked clinical notes in SQLite.
//
// The schema has two tables: documents (one row per note, keyed by
// patient_id + visit_date + note_type) and chunks (the flat chunk records the
// assembler emits, cascading on document delete). Schema changes go through
// versioned migrations; see migrations.go.
//
// # Drivers
//
// Two SQLite drivers are supported via build tags:
//
//   - default / purego: modernc.org/sqlite, no C compiler needed
//   - cgo_sqlite: github.com/mattn/go-sqlite3, faster ingestion
//
// # Write semantics
//
// ReplaceChunks swaps a document's entire chunk set inside one transaction.
// The chunking pipeline guarantees all-or-nothing output per call and the
// store mirrors that: a failed write leaves the previous chunk set intact.
package storage
