package packer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjelstad/clinichunk/internal/tokenizer"
	"github.com/mjelstad/clinichunk/pkg/types"
)

// tenWordSentences builds n sentences of exactly 10 words each, one per line
func tenWordSentences(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		for w := 0; w < 9; w++ {
			fmt.Fprintf(&sb, "ord%d-%d ", i, w)
		}
		fmt.Fprintf(&sb, "slutt%d.\n", i)
	}
	return sb.String()
}

func TestPack_Empty(t *testing.T) {
	p := New(tokenizer.NewWordCounter())

	chunks, err := p.Pack("", types.SectionConfig{TargetTokens: 25, OverlapTokens: 10})
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = p.Pack("   \n\t ", types.SectionConfig{TargetTokens: 25, OverlapTokens: 10})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestPack_SingleSmallChunk(t *testing.T) {
	p := New(tokenizer.NewWordCounter())
	text := "Smerte i korsrygg."

	chunks, err := p.Pack(text, types.SectionConfig{TargetTokens: 25, OverlapTokens: 10})

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Smerte i korsrygg.", chunks[0].Text)
	assert.Equal(t, 3, chunks[0].Tokens)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len(text), chunks[0].End)
}

func TestPack_TenSentences_BudgetTrace(t *testing.T) {
	// 10 sentences of 10 tokens each, target 25, overlap 10:
	// chunk 0 holds sentences 0-1 (20 tokens; a third would reach 30),
	// the overlap carries exactly one 10-token sentence, and every following
	// chunk is (carried sentence, next sentence) until the final pair.
	p := New(tokenizer.NewWordCounter())
	text := tenWordSentences(10)
	cfg := types.SectionConfig{TargetTokens: 25, OverlapTokens: 10}

	chunks, err := p.Pack(text, cfg)
	require.NoError(t, err)
	require.Len(t, chunks, 9)

	assert.Equal(t, 20, chunks[0].Tokens)
	assert.Contains(t, chunks[0].Text, "slutt0.")
	assert.Contains(t, chunks[0].Text, "slutt1.")

	for i := 1; i < len(chunks); i++ {
		assert.Equal(t, 20, chunks[i].Tokens)
		// First sentence of this chunk is the last sentence of the previous
		assert.Contains(t, chunks[i].Text, fmt.Sprintf("slutt%d.", i))
		assert.Contains(t, chunks[i].Text, fmt.Sprintf("slutt%d.", i+1))
		// Overlap: starts before the previous chunk ends, never before its start
		assert.Less(t, chunks[i].Start, chunks[i-1].End)
		assert.Greater(t, chunks[i].Start, chunks[i-1].Start)
	}

	// Every sentence appears in at least one chunk, intact
	joined := strings.Join(chunkTexts(chunks), " ")
	for i := 0; i < 10; i++ {
		assert.Contains(t, joined, fmt.Sprintf("slutt%d.", i))
	}
}

func TestPack_NoOverlap(t *testing.T) {
	p := New(tokenizer.NewWordCounter())
	text := tenWordSentences(4)
	cfg := types.SectionConfig{TargetTokens: 25, OverlapTokens: 0}

	chunks, err := p.Pack(text, cfg)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	// Without overlap the chunks tile the text: no shared sentences
	assert.Equal(t, 20, chunks[0].Tokens)
	assert.Equal(t, 20, chunks[1].Tokens)
	assert.GreaterOrEqual(t, chunks[1].Start, chunks[0].End)
}

func TestPack_OversizedSentenceEmittedAlone(t *testing.T) {
	p := New(tokenizer.NewWordCounter())

	var sb strings.Builder
	sb.WriteString("Kort setning.\n")
	for w := 0; w < 40; w++ {
		fmt.Fprintf(&sb, "lang%d ", w)
	}
	sb.WriteString("ferdig.\n")
	sb.WriteString("Etterpå kort.\n")

	cfg := types.SectionConfig{TargetTokens: 25, OverlapTokens: 0}
	chunks, err := p.Pack(sb.String(), cfg)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	// The 41-token sentence exceeds the budget but is never split
	assert.Equal(t, 2, chunks[0].Tokens)
	assert.Equal(t, 41, chunks[1].Tokens)
	assert.Contains(t, chunks[1].Text, "lang0")
	assert.Contains(t, chunks[1].Text, "ferdig.")
	assert.Equal(t, 2, chunks[2].Tokens)
}

func TestPack_OffsetsSliceOriginalText(t *testing.T) {
	p := New(tokenizer.NewWordCounter())
	text := tenWordSentences(6)

	chunks, err := p.Pack(text, types.SectionConfig{TargetTokens: 25, OverlapTokens: 10})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		require.Less(t, c.Start, c.End)
		require.LessOrEqual(t, c.End, len(text))
		// Chunk text is the original slice with inter-sentence whitespace
		// normalized to single spaces
		raw := text[c.Start:c.End]
		assert.Equal(t, strings.Join(strings.Fields(raw), " "), c.Text)
	}
}

func TestPack_CounterFailureAborts(t *testing.T) {
	failErr := errors.New("vocabulary unavailable")
	p := New(&failingCounter{err: failErr})

	chunks, err := p.Pack("En setning. To setninger.", types.SectionConfig{TargetTokens: 25, OverlapTokens: 5})

	assert.Nil(t, chunks)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrTokenization)
	assert.Contains(t, err.Error(), "offset 0")
}

func TestPack_NegativeCountAborts(t *testing.T) {
	p := New(&negativeCounter{})

	chunks, err := p.Pack("En setning.", types.SectionConfig{TargetTokens: 25, OverlapTokens: 5})

	assert.Nil(t, chunks)
	assert.ErrorIs(t, err, types.ErrTokenization)
}

func TestPack_OverlapSkippedWhenTailTooLarge(t *testing.T) {
	// When the last sentence of the closed chunk alone exceeds the overlap
	// budget, nothing is carried
	p := New(tokenizer.NewWordCounter())
	text := tenWordSentences(4)
	cfg := types.SectionConfig{TargetTokens: 25, OverlapTokens: 5}

	chunks, err := p.Pack(text, cfg)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.GreaterOrEqual(t, chunks[1].Start, chunks[0].End)
}

func chunkTexts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

type failingCounter struct{ err error }

func (c *failingCounter) Count(string) (int, error) { return 0, c.err }
func (c *failingCounter) Encoding() string          { return "failing" }

type negativeCounter struct{}

func (c *negativeCounter) Count(string) (int, error) { return -1, nil }
func (c *negativeCounter) Encoding() string          { return "negative" }

func BenchmarkPack(b *testing.B) {
	p := New(tokenizer.NewWordCounter())
	text := tenWordSentences(200)
	cfg := types.SectionConfig{TargetTokens: 120, OverlapTokens: 24}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Pack(text, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
