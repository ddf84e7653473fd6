package tutor

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aprenda-ai/tutor/schema"
)

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

func resultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func resultOutcome(t *testing.T, result *mcp.CallToolResult) schema.Outcome {
	t.Helper()
	var out schema.Outcome
	if err := json.Unmarshal([]byte(resultText(result)), &out); err != nil {
		t.Fatalf("unmarshal outcome from %q: %v", resultText(result), err)
	}
	return out
}

func TestHandleResolveMath(t *testing.T) {
	c := newTestClient(t)
	handle := handleResolve(c)

	result, err := handle(context.Background(), toolRequest(map[string]interface{}{
		"query": "quanto é 2 + 2?",
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", resultText(result))
	}
	out := resultOutcome(t, result)
	if out.Kind != schema.OutcomeAnswered {
		t.Fatalf("kind = %v, want answered", out.Kind)
	}
	if out.Text != "4" {
		t.Errorf("text = %q, want 4", out.Text)
	}
}

func TestHandleResolveMissingQuery(t *testing.T) {
	c := newTestClient(t)
	handle := handleResolve(c)

	result, err := handle(context.Background(), toolRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected tool error for missing query")
	}
}

func TestHandleResolveNeedsSearchRoundTrip(t *testing.T) {
	c := newTestClient(t)
	handle := handleResolve(c)

	first, err := handle(context.Background(), toolRequest(map[string]interface{}{
		"query": "Quem foi Kant?",
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if out := resultOutcome(t, first); out.Kind != schema.OutcomeNeedsSearch {
		t.Fatalf("first kind = %v, want needs_search", out.Kind)
	}

	second, err := handle(context.Background(), toolRequest(map[string]interface{}{
		"query": "Quem foi Kant?",
		"candidates": []interface{}{
			map[string]interface{}{
				"title":   "Immanuel Kant – Wikipédia",
				"snippet": "Immanuel Kant foi um filósofo prussiano, autor da Crítica da Razão Pura e figura central da filosofia moderna ocidental.",
				"source":  "pt.wikipedia.org",
				"url":     "https://pt.wikipedia.org/wiki/Immanuel_Kant",
			},
		},
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	out := resultOutcome(t, second)
	if out.Kind != schema.OutcomeAnswered {
		t.Fatalf("second kind = %v, want answered", out.Kind)
	}
	if !strings.Contains(out.Text, "Kant") {
		t.Errorf("answer %q does not mention the subject", out.Text)
	}
}

func TestHandleRankAndSynthesizeAllStubs(t *testing.T) {
	c := newTestClient(t)
	handle := handleRankAndSynthesize(c)

	result, err := handle(context.Background(), toolRequest(map[string]interface{}{
		"query": "Quem foi Kant?",
		"candidates": []interface{}{
			map[string]interface{}{"title": "", "snippet": "...", "source": "", "url": ""},
		},
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	out := resultOutcome(t, result)
	if out.Kind != schema.OutcomeFallback {
		t.Fatalf("kind = %v, want fallback", out.Kind)
	}
	if out.Text == "" {
		t.Error("fallback text is empty")
	}
}

func TestHandleCreateSessionAndChat(t *testing.T) {
	c := newTestClient(t)

	created, err := handleCreateSession(c)(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(resultText(created)), &payload); err != nil {
		t.Fatalf("unmarshal session payload: %v", err)
	}
	id := payload["session_id"]
	if id == "" {
		t.Fatal("empty session id")
	}

	chatted, err := handleChat(c)(context.Background(), toolRequest(map[string]interface{}{
		"session_id": id,
		"query":      "quanto é 10 / 4?",
	}))
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if isErrorResult(chatted) {
		t.Fatalf("unexpected tool error: %s", resultText(chatted))
	}
	if out := resultOutcome(t, chatted); out.Kind != schema.OutcomeAnswered {
		t.Errorf("kind = %v, want answered", out.Kind)
	}

	sess, ok := c.Sessions().Get(id)
	if !ok {
		t.Fatal("session not found after chat")
	}
	if len(sess.Messages) != 2 {
		t.Errorf("len(messages) = %d, want 2", len(sess.Messages))
	}
}
