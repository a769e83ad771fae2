package assembler

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mjelstad/clinichunk/internal/detector"
	"github.com/mjelstad/clinichunk/internal/packer"
	"github.com/mjelstad/clinichunk/internal/tokenizer"
	"github.com/mjelstad/clinichunk/pkg/types"
)

// DefaultMaxDocumentBytes bounds accepted document size
const DefaultMaxDocumentBytes = 1 << 20

// NoteMeta carries the identifying fields attached to every chunk of a note
type NoteMeta struct {
	PatientID   string
	VisitDate   string
	NoteType    string
	EncounterID string // optional
}

// Config contains configuration for the assembler
type Config struct {
	// Sections maps every section label to its packing parameters.
	// Nil selects types.DefaultSectionConfigs().
	Sections map[types.SectionLabel]types.SectionConfig

	// MaxDocumentBytes rejects larger documents (default: 1 MiB)
	MaxDocumentBytes int

	// Patterns overrides the built-in header registry (default: built-in)
	Patterns []detector.Pattern
}

// Assembler drives the full pipeline: section detection, per-section packing,
// and chunk record construction. An Assembler is immutable after construction
// and safe for concurrent use across independent documents.
type Assembler struct {
	detector *detector.Detector
	packer   *packer.Packer
	counter  tokenizer.Counter
	sections map[types.SectionLabel]types.SectionConfig
	maxBytes int
	now      func() time.Time
}

// New creates an Assembler. Section configs are validated here, before any
// document is scanned: every canonical label must have a config, and each
// overlap budget must be strictly below its target budget.
func New(counter tokenizer.Counter, config *Config) (*Assembler, error) {
	if config == nil {
		config = &Config{}
	}

	sections := config.Sections
	if sections == nil {
		sections = types.DefaultSectionConfigs()
	}
	for _, label := range types.CanonicalOrder {
		cfg, ok := sections[label]
		if !ok {
			return nil, fmt.Errorf("%w: missing config for section %s", types.ErrConfiguration, label)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("section %s: %w", label, err)
		}
	}

	maxBytes := config.MaxDocumentBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDocumentBytes
	}

	det := detector.New()
	if config.Patterns != nil {
		var err error
		det, err = detector.NewWithPatterns(config.Patterns)
		if err != nil {
			return nil, err
		}
	}

	return &Assembler{
		detector: det,
		packer:   packer.New(counter),
		counter:  counter,
		sections: sections,
		maxBytes: maxBytes,
		now:      time.Now,
	}, nil
}

// Assemble chunks one document into an ordered sequence of chunk records.
//
// Sections are emitted in canonical SOAP order (Subjective, Objective,
// Assessment, Plan, Unlabeled) regardless of their physical order in the
// note; spans sharing a label keep document order among themselves. Chunk IDs
// are a contiguous zero-based range across the whole output. Offsets are
// document-relative. Output is all-or-nothing: any failure returns no chunks.
//
// An empty or whitespace-only document yields no chunks and no error.
func (a *Assembler) Assemble(doc string, meta NoteMeta) ([]*types.ClinicalChunk, error) {
	if err := a.checkInput(doc); err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc) == "" {
		return nil, nil
	}

	spans := a.detector.Detect(doc)
	byLabel := make(map[types.SectionLabel][]types.SectionSpan, len(types.CanonicalOrder))
	for _, span := range spans {
		byLabel[span.Label] = append(byLabel[span.Label], span)
	}

	// One timestamp per assembly call, shared by every chunk
	createdAt := a.now().UTC().Format(time.RFC3339)

	var chunks []*types.ClinicalChunk
	chunkID := 0

	for _, label := range types.CanonicalOrder {
		cfg := a.sections[label]
		for _, span := range byLabel[label] {
			packed, err := a.packer.Pack(span.Text, cfg)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", label, err)
			}

			for i, pc := range packed {
				chunks = append(chunks, &types.ClinicalChunk{
					ChunkID:    chunkID,
					PatientID:  meta.PatientID,
					VisitDate:  meta.VisitDate,
					NoteType:   meta.NoteType,
					Section:    label,
					ChunkIndex: i,
					Text:       pc.Text,
					TokenCount: pc.Tokens,
					StartChar:  span.StartChar + pc.Start,
					EndChar:    span.StartChar + pc.End,
					Metadata: types.ChunkMetadata{
						SectionHeader:      span.HeaderText,
						TotalSectionChunks: len(packed),
						EncounterID:        meta.EncounterID,
						CreatedAt:          createdAt,
					},
				})
				chunkID++
			}
		}
	}

	return chunks, nil
}

// Sections detects the document's section spans and fills in their token
// counts. Spans are returned in document order.
func (a *Assembler) Sections(doc string) ([]types.SectionSpan, error) {
	if err := a.checkInput(doc); err != nil {
		return nil, err
	}

	spans := a.detector.Detect(doc)
	for i := range spans {
		n, err := a.counter.Count(spans[i].Text)
		if err != nil {
			return nil, fmt.Errorf("%w: section %s at offset %d: %v",
				types.ErrTokenization, spans[i].Label, spans[i].StartChar, err)
		}
		spans[i].TokenCount = n
	}
	return spans, nil
}

// checkInput rejects oversized or malformed document text
func (a *Assembler) checkInput(doc string) error {
	if len(doc) > a.maxBytes {
		return fmt.Errorf("%w: document is %d bytes, limit is %d", types.ErrInvalidInput, len(doc), a.maxBytes)
	}
	if !utf8.ValidString(doc) {
		return fmt.Errorf("%w: document is not valid UTF-8", types.ErrInvalidInput)
	}
	return nil
}
