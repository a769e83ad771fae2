package mcp

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mjelstad/clinichunk/internal/assembler"
	"github.com/mjelstad/clinichunk/internal/storage"
	"github.com/mjelstad/clinichunk/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeDocumentNotFound = -32001 // Document ID has no stored chunks
	ErrorCodeEmptyNote        = -32004 // note_text parameter is empty
)

// handleChunkNote handles the chunk_note tool invocation
func (s *Server) handleChunkNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	noteText, ok := args["note_text"].(string)
	if !ok || noteText == "" {
		return nil, newMCPError(ErrorCodeEmptyNote, "note_text parameter is required and cannot be empty", map[string]interface{}{
			"param":  "note_text",
			"reason": "missing or empty",
		})
	}

	meta := assembler.NoteMeta{
		EncounterID: getStringDefault(args, "encounter_id", ""),
	}
	for param, dst := range map[string]*string{
		"patient_id": &meta.PatientID,
		"visit_date": &meta.VisitDate,
		"note_type":  &meta.NoteType,
	} {
		val, ok := args[param].(string)
		if !ok || val == "" {
			return nil, newMCPError(ErrorCodeInvalidParams, param+" parameter is required", map[string]interface{}{
				"param":  param,
				"reason": "missing or empty",
			})
		}
		*dst = val
	}

	asm := s.assembler
	targetTokens := getIntDefault(args, "target_tokens", 0)
	overlapTokens := getIntDefault(args, "overlap_tokens", -1)
	if targetTokens > 0 || overlapTokens >= 0 {
		var err error
		asm, err = s.overriddenAssembler(targetTokens, overlapTokens)
		if err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid token budgets", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	chunks, err := asm.Assemble(noteText, meta)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "chunking failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	doc := &storage.Document{
		PatientID:   meta.PatientID,
		VisitDate:   meta.VisitDate,
		NoteType:    meta.NoteType,
		EncounterID: meta.EncounterID,
		ContentHash: sha256.Sum256([]byte(noteText)),
	}
	if err := s.storage.UpsertDocument(ctx, doc); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to store document", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := s.storage.ReplaceChunks(ctx, doc.ID, chunks); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to store chunks", map[string]interface{}{
			"error": err.Error(),
		})
	}

	sectionCounts := map[string]int{}
	for _, c := range chunks {
		sectionCounts[string(c.Section)]++
	}

	response := map[string]interface{}{
		"document_id":    doc.ID,
		"chunks_created": len(chunks),
		"sections":       sectionCounts,
		"encoding":       s.counter.Encoding(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetChunks handles the get_chunks tool invocation
func (s *Server) handleGetChunks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	documentID := getIntDefault(args, "document_id", 0)
	if documentID <= 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "document_id parameter is required", map[string]interface{}{
			"param":  "document_id",
			"reason": "missing or not a positive integer",
		})
	}

	chunks, err := s.storage.ListChunksByDocument(ctx, int64(documentID))
	if err == storage.ErrNotFound {
		return nil, newMCPError(ErrorCodeDocumentNotFound, "document not found", map[string]interface{}{
			"document_id": documentID,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load chunks", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"document_id": documentID,
		"chunk_count": len(chunks),
		"chunks":      chunks,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListDocuments handles the list_documents tool invocation
func (s *Server) handleListDocuments(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.storage.ListDocuments(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list documents", map[string]interface{}{
			"error": err.Error(),
		})
	}

	entries := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, map[string]interface{}{
			"document_id":  doc.ID,
			"patient_id":   doc.PatientID,
			"visit_date":   doc.VisitDate,
			"note_type":    doc.NoteType,
			"encounter_id": doc.EncounterID,
			"chunk_count":  doc.ChunkCount,
		})
	}

	response := map[string]interface{}{
		"document_count": len(docs),
		"documents":      entries,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// overriddenAssembler builds an assembler with uniform budget overrides
// applied on top of the defaults
func (s *Server) overriddenAssembler(targetTokens, overlapTokens int) (*assembler.Assembler, error) {
	sections := types.DefaultSectionConfigs()
	for label, cfg := range sections {
		if targetTokens > 0 {
			cfg.TargetTokens = targetTokens
		}
		if overlapTokens >= 0 {
			cfg.OverlapTokens = overlapTokens
		}
		sections[label] = cfg
	}
	return assembler.New(s.counter, &assembler.Config{Sections: sections})
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
