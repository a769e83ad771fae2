// Package packer groups section sentences into token-bounded, overlapping
// chunks for embedding and retrieval.
//
// Packing is greedy and single-pass: sentences accumulate until adding the
// next one would exceed the section's target token budget, at which point the
// chunk closes and whole sentences from its tail are carried into the next
// chunk while they fit the overlap budget. A sentence is never split across
// chunks: fragmenting a clinical sentence mid-way destroys retrievable
// meaning and risks corrupting clinical facts. A single sentence larger than
// the target budget is therefore emitted alone, over budget, and a chunk can
// exceed the target by at most one sentence's tokens.
//
// Chunk offsets refer to the original section text, so the overlap region
// makes a chunk's start precede the previous chunk's numeric end.
package packer
