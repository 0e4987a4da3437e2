package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"memexplainer/internal/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.OpenAIConfig{
		Endpoint:   serverURL,
		ChatModel:  "gpt-4o",
		EmbedModel: "text-embedding-3-small",
		APIKey:     "test-key",
	})
}

func TestCompleteSendsMessagesAndTemperature(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"hello there"}}]}`)
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Complete(context.Background(), "sys", "usr", 0.3)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if out != "hello there" {
		t.Fatalf("unexpected completion: %q", out)
	}

	if captured["temperature"] != 0.3 {
		t.Fatalf("temperature = %v, want 0.3", captured["temperature"])
	}
	messages, ok := captured["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("unexpected messages: %v", captured["messages"])
	}
	first := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "sys" {
		t.Fatalf("unexpected system message: %v", first)
	}
}

func TestCompleteErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), "sys", "usr", 0.7)
	if err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestCompleteMisconfigured(t *testing.T) {
	t.Parallel()

	client := NewClient(config.OpenAIConfig{Endpoint: "https://example.org", ChatModel: "gpt-4o"})
	if _, err := client.Complete(context.Background(), "sys", "usr", 0.3); err == nil {
		t.Fatal("expected error with empty api key")
	}
}

func TestEmbedPreservesOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		// Out-of-order response; the client must reorder by index.
		fmt.Fprint(w, `{"data":[
			{"index":1,"embedding":[0.2]},
			{"index":0,"embedding":[0.1]}
		]}`)
	}))
	defer server.Close()

	vectors, err := newTestClient(server.URL).Embed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 0.1 || vectors[1][0] != 0.2 {
		t.Fatalf("vectors out of order: %v", vectors)
	}
}

func TestEmbedCountMismatch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"index":0,"embedding":[0.1]}]}`)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error on vector count mismatch")
	}
}
