// Package assembler drives the chunking pipeline end to end: section
// detection, per-section sentence packing, and chunk record construction.
//
// # Usage
//
//	counter, err := tokenizer.NewTiktokenCounter("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	a, err := assembler.New(counter, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	chunks, err := a.Assemble(noteText, assembler.NoteMeta{
//	    PatientID: "p-123",
//	    VisitDate: "2026-03-14",
//	    NoteType:  "progress",
//	})
//
// # Ordering
//
// Chunks are emitted by canonical section order (Subjective, Objective,
// Assessment, Plan, Unlabeled), then by document order of spans sharing a
// label, then by position within each span. Chunk IDs are assigned in that
// order as a contiguous range starting at zero.
//
// # Determinism
//
// Assembly is a pure function of (document text, metadata, configuration)
// plus the token counter, apart from the created_at timestamp taken once per
// call. With a deterministic counter, repeated calls produce identical chunk
// sequences. Failures are all-or-nothing: no partial chunk sequence is ever
// returned.
package assembler
