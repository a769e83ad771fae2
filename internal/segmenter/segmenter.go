package segmenter

// Sentence is one sentence-like unit with its byte offsets in the input text.
// Text is trimmed; Start and End locate the trimmed text in the original
// input, so input[Start:End] == Text.
type Sentence struct {
	Text  string
	Start int
	End   int
}

// Segment splits text into ordered, non-empty sentence units. A sentence ends
// at a terminal character (. ! ? : ;) followed by whitespace or end of input,
// or at a newline. Whitespace-only fragments are dropped. Empty input yields
// an empty slice.
//
// Abbreviations are not special-cased: "Dr." followed by a space terminates a
// sentence. See the package documentation.
func Segment(text string) []Sentence {
	if text == "" {
		return nil
	}

	sentences := make([]Sentence, 0, 8)
	start := 0

	for i := 0; i < len(text); i++ {
		c := text[i]

		if c == '\n' {
			sentences = appendTrimmed(sentences, text, start, i)
			start = i + 1
			continue
		}

		if isTerminal(c) && (i+1 == len(text) || isSpace(text[i+1])) {
			sentences = appendTrimmed(sentences, text, start, i+1)
			start = i + 1
		}
	}

	return appendTrimmed(sentences, text, start, len(text))
}

// appendTrimmed appends text[lo:hi] as a sentence after trimming surrounding
// whitespace, tracking the offsets of the trimmed content
func appendTrimmed(sentences []Sentence, text string, lo, hi int) []Sentence {
	for lo < hi && isSpace(text[lo]) {
		lo++
	}
	for hi > lo && isSpace(text[hi-1]) {
		hi--
	}
	if lo >= hi {
		return sentences
	}
	return append(sentences, Sentence{Text: text[lo:hi], Start: lo, End: hi})
}

// isTerminal reports whether c ends a sentence when followed by whitespace
func isTerminal(c byte) bool {
	switch c {
	case '.', '!', '?', ':', ';':
		return true
	default:
		return false
	}
}

// isSpace reports whether c is ASCII whitespace
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
