package storage

import (
	"context"
	"time"

	"github.com/mjelstad/clinichunk/pkg/types"
)

// Storage defines the interface for persisting and querying chunked notes
type Storage interface {
	// Document operations
	UpsertDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, patientID, visitDate, noteType string) (*Document, error)
	GetDocumentByID(ctx context.Context, id int64) (*Document, error)
	ListDocuments(ctx context.Context) ([]*Document, error)
	DeleteDocument(ctx context.Context, id int64) error

	// Chunk operations. ReplaceChunks swaps a document's chunk set in one
	// transaction, matching the pipeline's all-or-nothing output contract.
	ReplaceChunks(ctx context.Context, documentID int64, chunks []*types.ClinicalChunk) error
	ListChunksByDocument(ctx context.Context, documentID int64) ([]*types.ClinicalChunk, error)

	// Status operations
	GetStatus(ctx context.Context) (*Status, error)

	// Database operations
	Close() error
}

// Document represents one stored clinical note
type Document struct {
	ID          int64
	PatientID   string
	VisitDate   string
	NoteType    string
	EncounterID string
	ContentHash [32]byte
	ChunkCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status contains store-level counts
type Status struct {
	DocumentsCount int
	ChunksCount    int
}
