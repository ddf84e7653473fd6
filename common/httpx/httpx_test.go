package httpx

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aprenda-ai/tutor/config"
)

func TestDoAllowlistBlocks(t *testing.T) {
	c := NewFromConfig(&config.HTTPClientConfig{HostAllowlist: []string{"api.duckduckgo.com"}})
	req, _ := http.NewRequest(http.MethodGet, "https://evil.example.com/x", nil)
	if _, err := c.Do(req); err != ErrHostNotAllowed {
		t.Fatalf("err = %v, want ErrHostNotAllowed", err)
	}
}

func TestDoAllowlistPermits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewFromConfig(&config.HTTPClientConfig{HostAllowlist: []string{"127.0.0.1"}})
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("allowed host rejected: %v", err)
	}
	resp.Body.Close()
}

func TestDoRetriesOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewFromConfig(&config.HTTPClientConfig{Retry: 2, BackoffMinMs: 1, BackoffMaxMs: 2})
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d after retry", resp.StatusCode)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("server saw %d calls, want 2", calls)
	}
}

func TestMatchHost(t *testing.T) {
	cases := []struct {
		pattern, host string
		want          bool
	}{
		{"*", "anything.example.com", true},
		{"api.bing.microsoft.com", "api.bing.microsoft.com", true},
		{"API.BING.MICROSOFT.COM", "api.bing.microsoft.com", true},
		{"*.duckduckgo.com", "api.duckduckgo.com", true},
		{"*.duckduckgo.com", "duckduckgo.com", true},
		{"*.duckduckgo.com", "evil-duckduckgo.com", false},
		{"api.bing.microsoft.com", "evil.com", false},
	}
	for _, c := range cases {
		if got := matchHost(c.pattern, c.host); got != c.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", c.pattern, c.host, got, c.want)
		}
	}
}
