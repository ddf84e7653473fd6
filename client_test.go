package tutor

import (
	"context"
	"strings"
	"testing"

	"github.com/aprenda-ai/tutor/cache"
	"github.com/aprenda-ai/tutor/config"
	"github.com/aprenda-ai/tutor/schema"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.Search.Providers = nil
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestAskMath(t *testing.T) {
	c := newTestClient(t)
	out := c.Ask(context.Background(), "quanto é 2 + 2?", schema.ModeNone, schema.StudentContext{})
	if out.Kind != schema.OutcomeAnswered {
		t.Fatalf("kind = %v, want answered", out.Kind)
	}
	if !strings.Contains(out.Text, "4") {
		t.Errorf("answer %q does not contain the result", out.Text)
	}
}

func TestAskCachesAnswered(t *testing.T) {
	c := newTestClient(t)
	first := c.Ask(context.Background(), "O que é mitose?", schema.ModeNone, schema.StudentContext{})
	if first.Kind != schema.OutcomeAnswered {
		t.Fatalf("kind = %v, want answered", first.Kind)
	}
	second := c.Ask(context.Background(), "o que é mitose?  ", schema.ModeNone, schema.StudentContext{})
	if second.Text != first.Text {
		t.Errorf("cache miss: repeat query produced a different answer")
	}
}

// With no search providers configured, an unanswerable query must still end
// in a terminal outcome, never needs-search.
func TestAskTerminalWithoutProviders(t *testing.T) {
	c := newTestClient(t)
	out := c.Ask(context.Background(), "Quem foi Kant?", schema.ModeNone, schema.StudentContext{})
	if out.Kind != schema.OutcomeFallback {
		t.Fatalf("kind = %v, want fallback", out.Kind)
	}
	if out.Text == "" {
		t.Error("fallback text is empty")
	}
}

// Answers templated from the student record must never leak between
// students through the shared answer cache.
func TestAskKeepsStudentsApart(t *testing.T) {
	c := newTestClient(t)

	ana := schema.StudentContext{DisplayName: "Ana", XP: 420, StreakDays: 6}
	bia := schema.StudentContext{DisplayName: "Bia", XP: 7}

	first := c.Ask(context.Background(), "como está meu progresso?", schema.ModeNone, ana)
	if !strings.Contains(first.Text, "420") {
		t.Fatalf("Ana's answer %q missing her XP", first.Text)
	}
	second := c.Ask(context.Background(), "como está meu progresso?", schema.ModeNone, bia)
	if strings.Contains(second.Text, "420") {
		t.Fatalf("Bia received Ana's record: %q", second.Text)
	}
	if !strings.Contains(second.Text, "XP acumulado: 7") {
		t.Errorf("Bia's answer %q missing her own XP", second.Text)
	}
}

// Clock answers go stale within the TTL, so they must never enter the cache.
func TestAskDoesNotCacheClockAnswers(t *testing.T) {
	c := newTestClient(t)

	student := schema.StudentContext{DisplayName: "Ana"}
	out := c.Ask(context.Background(), "que horas são?", schema.ModeNone, student)
	if out.Kind != schema.OutcomeAnswered {
		t.Fatalf("kind = %v, want answered", out.Kind)
	}
	key := cache.Key("que horas são?", schema.ModeNone, student)
	if _, ok := c.answers.Get(key); ok {
		t.Fatal("clock answer was cached")
	}
}

func TestChatRecordsTurns(t *testing.T) {
	c := newTestClient(t)
	sess := c.Sessions().Create()

	out, err := c.Chat(context.Background(), sess.ID, "quanto é 3 * 3?", schema.ModeNone, schema.StudentContext{})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out.Kind != schema.OutcomeAnswered {
		t.Fatalf("kind = %v, want answered", out.Kind)
	}

	got, ok := c.Sessions().Get(sess.ID)
	if !ok {
		t.Fatal("session disappeared")
	}
	if len(got.Messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(got.Messages))
	}
	if got.Messages[0].Role != "student" || got.Messages[1].Role != "tutor" {
		t.Errorf("roles = %q, %q", got.Messages[0].Role, got.Messages[1].Role)
	}
}

func TestChatUnknownSession(t *testing.T) {
	c := newTestClient(t)
	if _, err := c.Chat(context.Background(), "nope", "oi", schema.ModeNone, schema.StudentContext{}); err == nil {
		t.Fatal("expected error for unknown session")
	}
}
