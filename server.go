package tutor

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aprenda-ai/tutor/config"
)

const Version = "1.0.0"

// NewServer builds the MCP server exposing the tutor tools over stdio or any
// transport the caller wires up.
func NewServer(cfg *config.Config) (*server.MCPServer, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create tutor client failed: %w", err)
	}

	srv := server.NewMCPServer(
		"tutor",
		Version,
		server.WithInstructions("Study-companion response engine: answers student questions from local knowledge, arithmetic evaluation and web search results, in Portuguese."),
		server.WithToolCapabilities(false),
	)

	srv.AddTool(
		mcp.NewToolWithRawSchema("resolve", "Resolve a student query through the fallback chain; may return a needs_search outcome asking the caller to search and retry with candidates", resolveSchema()),
		handleResolve(client),
	)
	srv.AddTool(
		mcp.NewToolWithRawSchema("rank-and-synthesize", "Rank externally fetched candidate results and synthesize a single answer", rankAndSynthesizeSchema()),
		handleRankAndSynthesize(client),
	)
	srv.AddTool(
		mcp.NewToolWithRawSchema("ask", "Answer a student query end to end, running web search internally when needed", askSchema()),
		handleAsk(client),
	)
	srv.AddTool(
		mcp.NewToolWithRawSchema("chat", "Answer within a session, recording both conversation turns", chatSchema()),
		handleChat(client),
	)
	srv.AddTool(
		mcp.NewToolWithRawSchema("create-session", "Create a conversation session and return its id", createSessionSchema()),
		handleCreateSession(client),
	)

	return srv, nil
}
