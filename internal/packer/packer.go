package packer

import (
	"fmt"
	"strings"

	"github.com/mjelstad/clinichunk/internal/segmenter"
	"github.com/mjelstad/clinichunk/internal/tokenizer"
	"github.com/mjelstad/clinichunk/pkg/types"
)

// Chunk is one packed window of section text. Start and End are character
// offsets into the section text passed to Pack; because of overlap carry, a
// chunk's Start may precede the previous chunk's End, but never its Start.
type Chunk struct {
	Text   string
	Start  int
	End    int
	Tokens int
}

// Packer greedily groups consecutive sentences into token-bounded chunks,
// carrying a bounded tail of the previous chunk into the next one for context
// continuity. A Packer is immutable after construction and safe for
// concurrent use.
type Packer struct {
	counter tokenizer.Counter
}

// New creates a Packer using counter for budget decisions
func New(counter tokenizer.Counter) *Packer {
	return &Packer{counter: counter}
}

// pending is one accumulated sentence with its token count
type pending struct {
	sent   segmenter.Sentence
	tokens int
}

// Pack splits text into chunks under cfg.TargetTokens, never splitting a
// sentence. A single sentence over the budget is emitted alone, over budget.
// After each chunk closes, whole sentences from its tail are carried into the
// next chunk while their cumulative token count stays within
// cfg.OverlapTokens.
//
// Token counts are the sum of the chunk's sentence counts; sentences in a
// chunk are joined by a single space. Empty or whitespace-only text yields no
// chunks. Counter failures abort with the failing sentence's offset attached.
func (p *Packer) Pack(text string, cfg types.SectionConfig) ([]Chunk, error) {
	sentences := segmenter.Segment(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	var (
		chunks    []Chunk
		acc       []pending
		accTokens int
	)

	for _, s := range sentences {
		n, err := p.counter.Count(s.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: sentence at offset %d: %v", types.ErrTokenization, s.Start, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: sentence at offset %d: negative count %d", types.ErrTokenization, s.Start, n)
		}

		if accTokens+n > cfg.TargetTokens && len(acc) > 0 {
			chunks = append(chunks, closeChunk(acc, accTokens))
			acc, accTokens = carryOverlap(acc, cfg.OverlapTokens)
		}

		acc = append(acc, pending{sent: s, tokens: n})
		accTokens += n
	}

	// The loop always appends the current sentence after a close, so the
	// final accumulator is never pure overlap carry
	if len(acc) > 0 {
		chunks = append(chunks, closeChunk(acc, accTokens))
	}

	return chunks, nil
}

// closeChunk materializes the accumulated sentences as one chunk
func closeChunk(acc []pending, accTokens int) Chunk {
	texts := make([]string, len(acc))
	for i, p := range acc {
		texts[i] = p.sent.Text
	}
	return Chunk{
		Text:   strings.Join(texts, " "),
		Start:  acc[0].sent.Start,
		End:    acc[len(acc)-1].sent.End,
		Tokens: accTokens,
	}
}

// carryOverlap walks the just-closed chunk's sentences from the end backward,
// collecting (in original order) the longest tail whose cumulative token
// count stays within budget. The tail seeds the next chunk's accumulator.
func carryOverlap(acc []pending, budget int) ([]pending, int) {
	if budget <= 0 {
		return nil, 0
	}

	total := 0
	i := len(acc)
	for i > 0 {
		if total+acc[i-1].tokens > budget {
			break
		}
		total += acc[i-1].tokens
		i--
	}
	if i == len(acc) {
		return nil, 0
	}

	carried := make([]pending, len(acc)-i)
	copy(carried, acc[i:])
	return carried, total
}
