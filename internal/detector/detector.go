package detector

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mjelstad/clinichunk/pkg/types"
)

// Detector scans document text for section headers and partitions it into
// ordered, non-overlapping labeled spans. A Detector is immutable after
// construction and safe for concurrent use.
type Detector struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	label types.SectionLabel
	re    *regexp.Regexp
}

// New creates a Detector with the built-in header registry
func New() *Detector {
	d, err := NewWithPatterns(DefaultPatterns())
	if err != nil {
		// The built-in registry always compiles
		panic(err)
	}
	return d
}

// NewWithPatterns creates a Detector with a custom header registry.
// Declaration order is preserved and used to break ties between headers
// matching at the same document offset.
func NewWithPatterns(patterns []Pattern) (*Detector, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: header registry is empty", types.ErrConfiguration)
	}

	compiled := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		if err := p.Label.Validate(); err != nil {
			return nil, err
		}
		re, err := regexp.Compile(`(?im)^[ \t]*(?:` + p.Expr + `)`)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q for label %s: %v",
				types.ErrConfiguration, p.Expr, p.Label, err)
		}
		compiled = append(compiled, compiledPattern{label: p.Label, re: re})
	}
	return &Detector{patterns: compiled}, nil
}

// Scan finds every header occurrence in doc across all registered patterns,
// sorted ascending by start offset. The sort is stable, so headers matching
// at the exact same offset keep registry declaration order.
func (d *Detector) Scan(doc string) []types.HeaderMatch {
	var matches []types.HeaderMatch

	for _, p := range d.patterns {
		for _, loc := range p.re.FindAllStringIndex(doc, -1) {
			matches = append(matches, types.HeaderMatch{
				Label: p.label,
				Start: loc[0],
				End:   loc[1],
				Text:  strings.TrimSpace(doc[loc[0]:loc[1]]),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}

// Detect partitions doc into labeled section spans, in document order.
//
// Each span runs from the end of its header match to the start of the next
// header match (or the document end). Text preceding the first header becomes
// an Unlabeled span; a document with no headers at all becomes a single
// Unlabeled span. Spans that are empty after trimming are dropped, so an
// empty document yields no spans.
func (d *Detector) Detect(doc string) []types.SectionSpan {
	matches := d.Scan(doc)
	spans := make([]types.SectionSpan, 0, len(matches)+1)

	if len(matches) == 0 {
		return appendSpan(spans, doc, types.SectionUnlabeled, 0, len(doc), "")
	}

	if matches[0].Start > 0 {
		spans = appendSpan(spans, doc, types.SectionUnlabeled, 0, matches[0].Start, "")
	}

	for i, m := range matches {
		end := len(doc)
		if i+1 < len(matches) {
			end = matches[i+1].Start
		}
		if end < m.End {
			// The next header starts inside this one; the shorter span is empty
			continue
		}
		spans = appendSpan(spans, doc, m.Label, m.End, end, m.Text)
	}

	return spans
}

// appendSpan appends doc[lo:hi] as a span after trimming surrounding
// whitespace; empty results are dropped
func appendSpan(spans []types.SectionSpan, doc string, label types.SectionLabel, lo, hi int, header string) []types.SectionSpan {
	for lo < hi && isSpace(doc[lo]) {
		lo++
	}
	for hi > lo && isSpace(doc[hi-1]) {
		hi--
	}
	if lo >= hi {
		return spans
	}

	return append(spans, types.SectionSpan{
		Label:      label,
		Text:       doc[lo:hi],
		StartChar:  lo,
		EndChar:    hi,
		HeaderText: header,
	})
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
