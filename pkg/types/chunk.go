package types

import (
	"crypto/sha256"
	"errors"
)

// ChunkMetadata carries the auxiliary fields attached to every chunk record
type ChunkMetadata struct {
	SectionHeader      string `json:"section_header"`
	TotalSectionChunks int    `json:"total_section_chunks"`
	EncounterID        string `json:"encounter_id,omitempty"`
	CreatedAt          string `json:"created_at"`
}

// ClinicalChunk is the unit of output: one bounded, sentence-aligned window
// of a clinical note, ready for embedding and retrieval
type ClinicalChunk struct {
	// Identification
	ChunkID    int    `json:"chunk_id"`
	PatientID  string `json:"patient_id"`
	VisitDate  string `json:"visit_date"`
	NoteType   string `json:"note_type"`
	ChunkIndex int    `json:"chunk_index"` // zero-based within the section span

	// Content
	Section    SectionLabel `json:"soap_section"`
	Text       string       `json:"chunk_text"`
	TokenCount int          `json:"tokens"`

	// Location (document-relative character offsets)
	StartChar int `json:"start_char"`
	EndChar   int `json:"end_char"`

	Metadata ChunkMetadata `json:"metadata"`
}

// ValidateContent checks if the chunk content is valid
func (c *ClinicalChunk) ValidateContent() error {
	if c.Text == "" {
		return errors.New("chunk text cannot be empty")
	}

	if c.StartChar < 0 || c.EndChar < 0 {
		return errors.New("character offsets must be non-negative")
	}

	if c.StartChar > c.EndChar {
		return errors.New("start offset must be before or equal to end offset")
	}

	return nil
}

// Validate performs comprehensive validation of the chunk
func (c *ClinicalChunk) Validate() error {
	if err := c.ValidateContent(); err != nil {
		return err
	}

	if err := c.Section.Validate(); err != nil {
		return err
	}

	if c.ChunkID < 0 {
		return errors.New("chunk ID must be non-negative")
	}

	if c.ChunkIndex < 0 {
		return errors.New("chunk index must be non-negative")
	}

	if c.TokenCount <= 0 {
		return errors.New("token count must be positive")
	}

	if c.PatientID == "" {
		return errors.New("patient ID is required")
	}

	return nil
}

// ContentHash computes the SHA-256 hash of the chunk text, used by the store
// to detect unchanged documents
func (c *ClinicalChunk) ContentHash() [32]byte {
	return sha256.Sum256([]byte(c.Text))
}
