// Package segmenter splits clinical note text into sentence-like units.
//
// Splitting is purely punctuation-driven: a sentence ends at one of
// ". ! ? : ;" followed by whitespace, or at a newline. The segmenter is not
// language-aware beyond that, and clinical abbreviations ("Dr.", "ca.",
// "bl.a.") are NOT special-cased, so they can over-split a sentence. This is
// a known, accepted limitation: changing it moves chunk boundaries and with
// them the retrieval behavior of every already-indexed corpus.
//
// Each returned Sentence carries byte offsets into the original input, which
// the chunk packer needs for document-relative offset bookkeeping.
package segmenter
