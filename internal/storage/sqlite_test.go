package storage

import (
	"context"
	"crypto/sha256"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjelstad/clinichunk/pkg/types"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "clinichunk_test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testDocument() *Document {
	return &Document{
		PatientID:   "p-123",
		VisitDate:   "2026-03-14",
		NoteType:    "progress",
		EncounterID: "e-9",
		ContentHash: sha256.Sum256([]byte("note text")),
	}
}

func testChunks(n int) []*types.ClinicalChunk {
	chunks := make([]*types.ClinicalChunk, n)
	for i := range chunks {
		chunks[i] = &types.ClinicalChunk{
			ChunkID:    i,
			PatientID:  "p-123",
			VisitDate:  "2026-03-14",
			NoteType:   "progress",
			Section:    types.SectionSubjective,
			ChunkIndex: i,
			Text:       "Smerte i korsrygg.",
			TokenCount: 3,
			StartChar:  i * 20,
			EndChar:    i*20 + 18,
			Metadata: types.ChunkMetadata{
				SectionHeader:      "Subjektiv:",
				TotalSectionChunks: n,
				EncounterID:        "e-9",
				CreatedAt:          "2026-03-14T10:22:31Z",
			},
		}
	}
	return chunks
}

func TestUpsertDocument(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	doc := testDocument()
	require.NoError(t, store.UpsertDocument(ctx, doc))
	assert.NotZero(t, doc.ID)

	// Upserting the same identity updates in place
	doc2 := testDocument()
	doc2.EncounterID = "e-10"
	require.NoError(t, store.UpsertDocument(ctx, doc2))
	assert.Equal(t, doc.ID, doc2.ID)

	stored, err := store.GetDocumentByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "e-10", stored.EncounterID)
	assert.Equal(t, doc.ContentHash, stored.ContentHash)
}

func TestGetDocument_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetDocument(context.Background(), "nobody", "2026-01-01", "progress")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetDocumentByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceChunks_RoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	doc := testDocument()
	require.NoError(t, store.UpsertDocument(ctx, doc))

	chunks := testChunks(3)
	require.NoError(t, store.ReplaceChunks(ctx, doc.ID, chunks))

	stored, err := store.ListChunksByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	for i, c := range stored {
		assert.Equal(t, i, c.ChunkID)
		assert.Equal(t, types.SectionSubjective, c.Section)
		assert.Equal(t, "Smerte i korsrygg.", c.Text)
		assert.Equal(t, 3, c.TokenCount)
		assert.Equal(t, "p-123", c.PatientID)
		assert.Equal(t, "e-9", c.Metadata.EncounterID)
		assert.Equal(t, "2026-03-14T10:22:31Z", c.Metadata.CreatedAt)
	}

	updated, err := store.GetDocumentByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ChunkCount)
}

func TestReplaceChunks_ReplacesExisting(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	doc := testDocument()
	require.NoError(t, store.UpsertDocument(ctx, doc))
	require.NoError(t, store.ReplaceChunks(ctx, doc.ID, testChunks(5)))
	require.NoError(t, store.ReplaceChunks(ctx, doc.ID, testChunks(2)))

	stored, err := store.ListChunksByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestReplaceChunks_InvalidChunkAborts(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	doc := testDocument()
	require.NoError(t, store.UpsertDocument(ctx, doc))
	require.NoError(t, store.ReplaceChunks(ctx, doc.ID, testChunks(2)))

	bad := testChunks(2)
	bad[1].Text = ""
	err := store.ReplaceChunks(ctx, doc.ID, bad)
	require.Error(t, err)

	// Transaction rolled back: previous chunk set untouched
	stored, err := store.ListChunksByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestDeleteDocument_Cascades(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	doc := testDocument()
	require.NoError(t, store.UpsertDocument(ctx, doc))
	require.NoError(t, store.ReplaceChunks(ctx, doc.ID, testChunks(2)))

	require.NoError(t, store.DeleteDocument(ctx, doc.ID))

	_, err := store.GetDocumentByID(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.DocumentsCount)
	assert.Equal(t, 0, status.ChunksCount)

	assert.ErrorIs(t, store.DeleteDocument(ctx, doc.ID), ErrNotFound)
}

func TestListDocuments(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for _, visit := range []string{"2026-03-14", "2026-01-02"} {
		doc := testDocument()
		doc.VisitDate = visit
		require.NoError(t, store.UpsertDocument(ctx, doc))
	}

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "2026-01-02", docs[0].VisitDate)
	assert.Equal(t, "2026-03-14", docs[1].VisitDate)
}

func TestGetStatus(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	doc := testDocument()
	require.NoError(t, store.UpsertDocument(ctx, doc))
	require.NoError(t, store.ReplaceChunks(ctx, doc.ID, testChunks(4)))

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.DocumentsCount)
	assert.Equal(t, 4, status.ChunksCount)
}

func TestMigrations_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate_test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening re-runs ApplyMigrations against an up-to-date schema
	store, err = NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
