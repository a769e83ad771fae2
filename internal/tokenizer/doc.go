// Package tokenizer provides token counting for the chunking pipeline.
//
// Token counting is a consumed capability: the chunker makes budget decisions
// from the counts but never tokenizes text itself. The scheme is caller
// configuration, not a chunker decision.
//
// # Counters
//
//   - TiktokenCounter: BPE counts via tiktoken encodings (cl100k_base etc.)
//   - WordCounter: whitespace word counts, deterministic and dependency-free
//   - CachedCounter: LRU-cached decorator around any Counter
//
// # Usage
//
//	counter, err := tokenizer.NewTiktokenCounter("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n, err := counter.Count("Pasienten angir smerter i korsryggen.")
//
// A Counter is initialized once and shared read-only across chunking calls.
// Loading a BPE vocabulary is comparatively expensive; counting with a loaded
// encoding is cheap.
package tokenizer
