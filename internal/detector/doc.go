// Package detector partitions clinical note text into labeled SOAP sections.
//
// Detection is structural, not semantic: a fixed registry of case-insensitive,
// line-anchored header patterns (Norwegian and English vocabulary) is scanned
// over the whole document, all matches are merged and sorted by offset, and
// the text between consecutive headers becomes one section span. Text before
// the first header, or a document with no headers at all, is attributed to
// the Unlabeled pseudo-section.
//
// # Tie resolution
//
// Every pattern is scanned independently and all matches are collected before
// any resolution, so overlapping candidates from different labels are never
// lost to first-match-wins short-circuiting. When two headers match at the
// exact same offset the stable sort keeps registry declaration order; this is
// inherited behavior, not a heuristic, and must not be changed silently.
//
// # Usage
//
//	d := detector.New()
//	spans := d.Detect(noteText)
//	for _, span := range spans {
//	    fmt.Printf("%s [%d:%d] %q\n", span.Label, span.StartChar, span.EndChar, span.HeaderText)
//	}
package detector
