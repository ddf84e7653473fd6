package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aprenda-ai/tutor/resolver"
	"github.com/aprenda-ai/tutor/schema"
)

// ====================================================================
// Tool schemas
// ====================================================================

const studentContextProps = `{
	"type": "object",
	"description": "Read-only student record used by greeting and context stages",
	"properties": {
		"display_name": {"type": "string"},
		"streak_days": {"type": "integer"},
		"xp": {"type": "integer"},
		"pending_tasks": {"type": "integer"},
		"overdue_tasks": {"type": "integer"},
		"notes_count": {"type": "integer"},
		"weak_subjects": {"type": "array", "items": {"type": "string"}},
		"strong_subject": {"type": "string"},
		"goal_progress": {"type": "integer"},
		"reminders": {"type": "array", "items": {"type": "string"}}
	}
}`

const candidatesProps = `{
	"type": "array",
	"description": "Web search results from a prior needs_search outcome",
	"items": {
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"snippet": {"type": "string"},
			"source": {"type": "string"},
			"url": {"type": "string"}
		},
		"required": ["snippet"]
	}
}`

func resolveSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "The student's question"},
			"mode": {"type": "string", "enum": ["", "exercise", "socratic", "debate", "brainstorm"]},
			"context": ` + studentContextProps + `,
			"candidates": ` + candidatesProps + `
		},
		"required": ["query"]
	}`)
}

func rankAndSynthesizeSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "The student's question"},
			"candidates": ` + candidatesProps + `,
			"display_name": {"type": "string", "description": "Student name for the answer lead-in"}
		},
		"required": ["query", "candidates"]
	}`)
}

func askSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "The student's question"},
			"mode": {"type": "string", "enum": ["", "exercise", "socratic", "debate", "brainstorm"]},
			"context": ` + studentContextProps + `
		},
		"required": ["query"]
	}`)
}

func chatSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"session_id": {"type": "string"},
			"query": {"type": "string", "description": "The student's question"},
			"mode": {"type": "string", "enum": ["", "exercise", "socratic", "debate", "brainstorm"]},
			"context": ` + studentContextProps + `
		},
		"required": ["session_id", "query"]
	}`)
}

func createSessionSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

// ====================================================================
// Tool handlers
// ====================================================================

func handleResolve(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		query, ok := args["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		req := resolver.Request{
			Query:   query,
			Mode:    parseMode(args),
			Context: parseStudentContext(args),
		}
		if err := decodeArg(args, "candidates", &req.Candidates); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid candidates: %v", err)), nil
		}
		out := c.Resolver().Resolve(ctx, req)
		return outcomeResult(out)
	}
}

func handleRankAndSynthesize(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		query, ok := args["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		var candidates []schema.CandidateResult
		if err := decodeArg(args, "candidates", &candidates); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid candidates: %v", err)), nil
		}
		displayName, _ := args["display_name"].(string)
		text, ok := c.Resolver().RankAndSynthesize(query, candidates, displayName)
		if !ok {
			return outcomeResult(schema.Fallback("Nenhum dos resultados encontrados serve para responder. Tente reformular a pergunta."))
		}
		return outcomeResult(schema.Answered(text))
	}
}

func handleAsk(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		query, ok := args["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		out := c.Ask(ctx, query, parseMode(args), parseStudentContext(args))
		return outcomeResult(out)
	}
}

func handleChat(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		sessionID, _ := args["session_id"].(string)
		query, ok := args["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		out, err := c.Chat(ctx, sessionID, query, parseMode(args), parseStudentContext(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return outcomeResult(out)
	}
}

func handleCreateSession(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sess := c.Sessions().Create()
		b, err := json.Marshal(map[string]string{"session_id": sess.ID})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}

// ====================================================================
// Argument helpers
// ====================================================================

func parseMode(args map[string]any) schema.Mode {
	m, _ := args["mode"].(string)
	return schema.Mode(m)
}

func parseStudentContext(args map[string]any) schema.StudentContext {
	var sc schema.StudentContext
	// Best effort: a malformed context degrades to the zero record.
	_ = decodeArg(args, "context", &sc)
	return sc
}

// decodeArg re-marshals a loosely typed argument into its typed form.
func decodeArg(args map[string]any, key string, dst any) error {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func outcomeResult(out schema.Outcome) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
