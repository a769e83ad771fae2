package tokenizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordCounter(t *testing.T) {
	c := NewWordCounter()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single word", "smerte", 1},
		{"sentence", "Pasienten angir smerter i korsryggen.", 5},
		{"extra whitespace", "  ROM   redusert  \n\t ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Count(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "words", c.Encoding())
}

func TestCachedCounter(t *testing.T) {
	inner := &countingCounter{inner: NewWordCounter()}
	c, err := NewCachedCounter(inner, 16)
	require.NoError(t, err)

	n1, err := c.Count("en to tre")
	require.NoError(t, err)
	assert.Equal(t, 3, n1)

	// Second call for identical text must hit the cache
	n2, err := c.Count("en to tre")
	require.NoError(t, err)
	assert.Equal(t, 3, n2)
	assert.Equal(t, 1, inner.calls)

	assert.Equal(t, "words", c.Encoding())
}

func TestCachedCounter_InnerFailure(t *testing.T) {
	failErr := errors.New("boom")
	c, err := NewCachedCounter(&failingCounter{err: failErr}, 16)
	require.NoError(t, err)

	_, err = c.Count("anything")
	assert.ErrorIs(t, err, failErr)
}

func TestCachedCounter_NegativeCount(t *testing.T) {
	c, err := NewCachedCounter(&negativeCounter{}, 16)
	require.NoError(t, err)

	_, err = c.Count("anything")
	assert.ErrorIs(t, err, ErrNegativeCount)
}

func TestNewFromEnv_Words(t *testing.T) {
	t.Setenv(EncodingEnvVar, "words")

	c, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "words", c.Encoding())
}

// countingCounter tracks how often the inner counter is invoked
type countingCounter struct {
	inner Counter
	calls int
}

func (c *countingCounter) Count(text string) (int, error) {
	c.calls++
	return c.inner.Count(text)
}

func (c *countingCounter) Encoding() string { return c.inner.Encoding() }

type failingCounter struct{ err error }

func (c *failingCounter) Count(string) (int, error) { return 0, c.err }
func (c *failingCounter) Encoding() string          { return "failing" }

type negativeCounter struct{}

func (c *negativeCounter) Count(string) (int, error) { return -1, nil }
func (c *negativeCounter) Encoding() string          { return "negative" }
