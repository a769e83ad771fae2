package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mjelstad/clinichunk/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Document operations

// UpsertDocument inserts a document or updates it if one already exists for
// the same (patient_id, visit_date, note_type). The document's ID is set.
func (s *SQLiteStorage) UpsertDocument(ctx context.Context, doc *Document) error {
	query := `
		INSERT INTO documents (patient_id, visit_date, note_type, encounter_id, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(patient_id, visit_date, note_type) DO UPDATE SET
			encounter_id = excluded.encounter_id,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
	`
	now := time.Now()
	if _, err := s.db.ExecContext(ctx, query,
		doc.PatientID, doc.VisitDate, doc.NoteType, doc.EncounterID,
		doc.ContentHash[:], now, now); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	// LastInsertId is unreliable for ON CONFLICT updates; read the row back
	stored, err := s.GetDocument(ctx, doc.PatientID, doc.VisitDate, doc.NoteType)
	if err != nil {
		return err
	}
	doc.ID = stored.ID
	doc.ChunkCount = stored.ChunkCount
	doc.CreatedAt = stored.CreatedAt
	doc.UpdatedAt = stored.UpdatedAt
	return nil
}

// GetDocument retrieves a document by its identifying fields
func (s *SQLiteStorage) GetDocument(ctx context.Context, patientID, visitDate, noteType string) (*Document, error) {
	query := `
		SELECT id, patient_id, visit_date, note_type, encounter_id, content_hash, chunk_count, created_at, updated_at
		FROM documents
		WHERE patient_id = ? AND visit_date = ? AND note_type = ?
	`
	return s.scanDocument(s.db.QueryRowContext(ctx, query, patientID, visitDate, noteType))
}

// GetDocumentByID retrieves a document by its row ID
func (s *SQLiteStorage) GetDocumentByID(ctx context.Context, id int64) (*Document, error) {
	query := `
		SELECT id, patient_id, visit_date, note_type, encounter_id, content_hash, chunk_count, created_at, updated_at
		FROM documents
		WHERE id = ?
	`
	return s.scanDocument(s.db.QueryRowContext(ctx, query, id))
}

// ListDocuments returns all stored documents ordered by patient and visit
func (s *SQLiteStorage) ListDocuments(ctx context.Context) ([]*Document, error) {
	query := `
		SELECT id, patient_id, visit_date, note_type, encounter_id, content_hash, chunk_count, created_at, updated_at
		FROM documents
		ORDER BY patient_id, visit_date, note_type
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document and, via cascade, its chunks
func (s *SQLiteStorage) DeleteDocument(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Chunk operations

// ReplaceChunks deletes a document's stored chunks and inserts the given set
// in one transaction, then updates the document's chunk count. Either every
// chunk lands or none do.
func (s *SQLiteStorage) ReplaceChunks(ctx context.Context, documentID int64, chunks []*types.ClinicalChunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}

	insert := `
		INSERT INTO chunks (document_id, chunk_id, soap_section, chunk_index, chunk_text,
		                    tokens, start_char, end_char, section_header, total_section_chunks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid chunk %d: %w", c.ChunkID, err)
		}
		if _, err := tx.ExecContext(ctx, insert,
			documentID, c.ChunkID, string(c.Section), c.ChunkIndex, c.Text,
			c.TokenCount, c.StartChar, c.EndChar,
			c.Metadata.SectionHeader, c.Metadata.TotalSectionChunks, c.Metadata.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", c.ChunkID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE documents SET chunk_count = ?, updated_at = ? WHERE id = ?",
		len(chunks), time.Now(), documentID); err != nil {
		return fmt.Errorf("failed to update chunk count: %w", err)
	}

	return tx.Commit()
}

// ListChunksByDocument returns a document's chunks in emission order
func (s *SQLiteStorage) ListChunksByDocument(ctx context.Context, documentID int64) ([]*types.ClinicalChunk, error) {
	doc, err := s.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT chunk_id, soap_section, chunk_index, chunk_text, tokens,
		       start_char, end_char, section_header, total_section_chunks, created_at
		FROM chunks
		WHERE document_id = ?
		ORDER BY chunk_id
	`
	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []*types.ClinicalChunk
	for rows.Next() {
		c := &types.ClinicalChunk{
			PatientID: doc.PatientID,
			VisitDate: doc.VisitDate,
			NoteType:  doc.NoteType,
		}
		var section string
		if err := rows.Scan(&c.ChunkID, &section, &c.ChunkIndex, &c.Text, &c.TokenCount,
			&c.StartChar, &c.EndChar, &c.Metadata.SectionHeader,
			&c.Metadata.TotalSectionChunks, &c.Metadata.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		c.Section = types.SectionLabel(section)
		c.Metadata.EncounterID = doc.EncounterID
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// Status operations

// GetStatus returns store-level counts
func (s *SQLiteStorage) GetStatus(ctx context.Context) (*Status, error) {
	status := &Status{}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&status.DocumentsCount); err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&status.ChunksCount); err != nil {
		return nil, fmt.Errorf("failed to count chunks: %w", err)
	}
	return status, nil
}

// scanDocument scans a single document row
func (s *SQLiteStorage) scanDocument(row *sql.Row) (*Document, error) {
	doc := &Document{}
	var hash []byte
	var encounterID sql.NullString
	err := row.Scan(&doc.ID, &doc.PatientID, &doc.VisitDate, &doc.NoteType,
		&encounterID, &hash, &doc.ChunkCount, &doc.CreatedAt, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	doc.EncounterID = encounterID.String
	copy(doc.ContentHash[:], hash)
	return doc, nil
}

// scanDocumentRow scans a document from a multi-row result
func scanDocumentRow(rows *sql.Rows) (*Document, error) {
	doc := &Document{}
	var hash []byte
	var encounterID sql.NullString
	err := rows.Scan(&doc.ID, &doc.PatientID, &doc.VisitDate, &doc.NoteType,
		&encounterID, &hash, &doc.ChunkCount, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	doc.EncounterID = encounterID.String
	copy(doc.ContentHash[:], hash)
	return doc, nil
}
