package tutor

import (
	"fmt"
	"testing"
	"time"
)

func TestMemSessionStore(t *testing.T) {
	store := NewMemSessionStore(20)
	sess := store.Create()
	if sess.ID == "" {
		t.Fatal("session without id")
	}

	got, ok := store.Get(sess.ID)
	if !ok || got.ID != sess.ID {
		t.Fatalf("Get = (%+v, %v)", got, ok)
	}

	if !store.AddMessage(sess.ID, ChatMessage{Role: "student", Content: "oi", Timestamp: time.Now()}) {
		t.Fatal("AddMessage failed for existing session")
	}
	if store.AddMessage("nope", ChatMessage{Role: "student", Content: "oi"}) {
		t.Fatal("AddMessage succeeded for unknown session")
	}

	got, _ = store.Get(sess.ID)
	if len(got.Messages) != 1 || got.Messages[0].Content != "oi" {
		t.Fatalf("messages = %+v", got.Messages)
	}

	if !store.Delete(sess.ID) {
		t.Fatal("Delete failed")
	}
	if _, ok := store.Get(sess.ID); ok {
		t.Fatal("session survived delete")
	}
}

func TestMemSessionStoreTrimsHistory(t *testing.T) {
	store := NewMemSessionStore(3)
	sess := store.Create()
	for i := 0; i < 5; i++ {
		store.AddMessage(sess.ID, ChatMessage{Role: "student", Content: fmt.Sprintf("m%d", i)})
	}
	got, _ := store.Get(sess.ID)
	if len(got.Messages) != 3 {
		t.Fatalf("history length = %d, want 3", len(got.Messages))
	}
	if got.Messages[0].Content != "m2" {
		t.Fatalf("oldest kept turn = %q, want m2", got.Messages[0].Content)
	}
}

func TestMemSessionStoreListAndClean(t *testing.T) {
	store := NewMemSessionStore(20)
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, store.Create().ID)
	}

	list := store.ListRange(0, 3)
	if len(list) != 3 {
		t.Fatalf("ListRange returned %d sessions, want 3", len(list))
	}
	if got := store.ListRange(10, 3); len(got) != 0 {
		t.Fatalf("out-of-range ListRange returned %d sessions", len(got))
	}

	if err := store.Clean(2); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	remaining := 0
	for _, id := range ids {
		if _, ok := store.Get(id); ok {
			remaining++
		}
	}
	if remaining != 2 {
		t.Fatalf("Clean kept %d sessions, want 2", remaining)
	}
}
