package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mjelstad/clinichunk/internal/assembler"
	"github.com/mjelstad/clinichunk/internal/storage"
	"github.com/mjelstad/clinichunk/internal/tokenizer"
)

const (
	// ServerName is the MCP server name
	ServerName = "clinichunk"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the chunk database
	DefaultDBPath = "~/.clinichunk"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	storage   storage.Storage
	assembler *assembler.Assembler
	counter   tokenizer.Counter
}

// NewServer creates a new MCP server instance
func NewServer(dbPath string) (*Server, error) {
	// Expand home directory if needed
	if dbPath == "" || dbPath == DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".clinichunk")
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbFile := filepath.Join(dbPath, "clinichunk.db")

	store, err := storage.NewSQLiteStorage(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// The token counter loads its vocabulary once and is shared read-only
	// across all chunking calls
	counter, err := tokenizer.NewFromEnv()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize token counter: %w", err)
	}
	cached, err := tokenizer.NewCachedCounter(counter, 0)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize token counter cache: %w", err)
	}

	asm, err := assembler.New(cached, nil)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize assembler: %w", err)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:       mcpServer,
		storage:   store,
		assembler: asm,
		counter:   cached,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(chunkNoteTool(), s.handleChunkNote)
	s.mcp.AddTool(getChunksTool(), s.handleGetChunks)
	s.mcp.AddTool(listDocumentsTool(), s.handleListDocuments)
}
