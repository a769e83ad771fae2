// Package mcp implements the Model Context Protocol (MCP) server for the
// clinical note chunker.
//
// The server exposes three tools over JSON-RPC 2.0 on stdio:
//   - chunk_note: segment a note into SOAP sections and store its chunks
//   - get_chunks: retrieve the stored chunk records for a document
//   - list_documents: list stored documents with chunk counts
//
// # Tool: chunk_note
//
//	Request:
//	{
//	  "name": "chunk_note",
//	  "arguments": {
//	    "note_text": "Subjektiv:\nSmerte i korsrygg...",
//	    "patient_id": "p-123",
//	    "visit_date": "2026-03-14",
//	    "note_type": "progress",
//	    "encounter_id": "e-9",
//	    "target_tokens": 300,
//	    "overlap_tokens": 50
//	  }
//	}
//
//	Response: {"document_id": 1, "chunks_created": 4, "sections": {...}}
//
// The optional budget overrides apply uniformly to every section; omitted,
// the per-section defaults from pkg/types are used. Re-chunking an existing
// (patient_id, visit_date, note_type) replaces its chunk set atomically.
//
// Stdout is reserved for the protocol; all logging goes to stderr.
package mcp
