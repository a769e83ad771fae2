package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkNoteTool returns the tool definition for chunk_note
func chunkNoteTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_note",
		Description: "Segment a clinical note into SOAP sections and store token-bounded, overlapping chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"note_text": map[string]interface{}{
					"type":        "string",
					"description": "Raw clinical note text",
				},
				"patient_id": map[string]interface{}{
					"type":        "string",
					"description": "Patient identifier",
				},
				"visit_date": map[string]interface{}{
					"type":        "string",
					"description": "Visit date (ISO-8601 date)",
				},
				"note_type": map[string]interface{}{
					"type":        "string",
					"description": "Note type (e.g. progress, discharge)",
				},
				"encounter_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional encounter identifier",
				},
				"target_tokens": map[string]interface{}{
					"type":        "integer",
					"description": "Override the target token budget for every section",
					"minimum":     1,
				},
				"overlap_tokens": map[string]interface{}{
					"type":        "integer",
					"description": "Override the overlap token budget for every section (must be below target_tokens)",
					"minimum":     0,
				},
			},
			Required: []string{"note_text", "patient_id", "visit_date", "note_type"},
		},
	}
}

// getChunksTool returns the tool definition for get_chunks
func getChunksTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_chunks",
		Description: "Retrieve the stored chunk records for a chunked note",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "integer",
					"description": "Document ID returned by chunk_note",
				},
			},
			Required: []string{"document_id"},
		},
	}
}

// listDocumentsTool returns the tool definition for list_documents
func listDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_documents",
		Description: "List stored documents with their chunk counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
