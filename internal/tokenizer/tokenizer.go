package tokenizer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkoukk/tiktoken-go"
)

// Common errors
var (
	ErrUnknownEncoding = errors.New("unknown token encoding")
	ErrNegativeCount   = errors.New("token counter returned a negative count")
)

const (
	// DefaultEncoding is the BPE encoding used when none is configured
	DefaultEncoding = "cl100k_base"

	// EncodingEnvVar selects the encoding for NewFromEnv. The special value
	// "words" selects the whitespace word counter instead of a BPE encoding.
	EncodingEnvVar = "CLINICHUNK_ENCODING"
)

// Counter counts tokens in a string under a fixed tokenization scheme.
// Implementations must be safe for concurrent use and must never be mutated
// after construction; the chunking pipeline shares one Counter across calls.
type Counter interface {
	// Count returns the number of tokens in text
	Count(text string) (int, error)

	// Encoding returns the name of the tokenization scheme
	Encoding() string
}

// TiktokenCounter counts BPE tokens using a tiktoken encoding
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTiktokenCounter creates a counter for the named tiktoken encoding
// (e.g. "cl100k_base" for GPT-4 era models, "o200k_base" for newer ones)
func NewTiktokenCounter(name string) (*TiktokenCounter, error) {
	if name == "" {
		name = DefaultEncoding
	}
	encoding, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownEncoding, name, err)
	}
	return &TiktokenCounter{encoding: encoding, name: name}, nil
}

// Count returns the BPE token count for text
func (c *TiktokenCounter) Count(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return len(c.encoding.Encode(text, nil, nil)), nil
}

// Encoding returns the tiktoken encoding name
func (c *TiktokenCounter) Encoding() string {
	return c.name
}

// WordCounter counts whitespace-separated words. It is deterministic, never
// fails, and needs no vocabulary download, which makes it the counter of
// choice for tests and offline use.
type WordCounter struct{}

// NewWordCounter creates a whitespace word counter
func NewWordCounter() *WordCounter {
	return &WordCounter{}
}

// Count returns the number of whitespace-separated fields in text
func (c *WordCounter) Count(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

// Encoding returns the scheme name
func (c *WordCounter) Encoding() string {
	return "words"
}

// CachedCounter wraps another Counter with an in-memory LRU cache keyed by
// content hash. Counts are immutable for a given text, so cached entries
// never invalidate.
type CachedCounter struct {
	inner Counter
	cache *lru.Cache[string, int]
}

// NewCachedCounter wraps inner with an LRU cache of maxLen entries
func NewCachedCounter(inner Counter, maxLen int) (*CachedCounter, error) {
	if maxLen <= 0 {
		maxLen = 10000
	}
	cache, err := lru.New[string, int](maxLen)
	if err != nil {
		return nil, fmt.Errorf("failed to create token count cache: %w", err)
	}
	return &CachedCounter{inner: inner, cache: cache}, nil
}

// Count returns the cached count for text, computing and caching it on a miss
func (c *CachedCounter) Count(text string) (int, error) {
	key := hashText(text)
	if count, ok := c.cache.Get(key); ok {
		return count, nil
	}

	count, err := c.inner.Count(text)
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}

	c.cache.Add(key, count)
	return count, nil
}

// Encoding returns the wrapped counter's scheme name
func (c *CachedCounter) Encoding() string {
	return c.inner.Encoding()
}

// hashText computes a cache key from text content
func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// NewFromEnv creates a Counter based on the CLINICHUNK_ENCODING environment
// variable, defaulting to the cl100k_base BPE encoding
func NewFromEnv() (Counter, error) {
	name := os.Getenv(EncodingEnvVar)
	if name == "words" {
		return NewWordCounter(), nil
	}
	return NewTiktokenCounter(name)
}
