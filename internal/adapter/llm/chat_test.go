package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wikiqa/internal/port"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ChatClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("TEST_CHAT_KEY", "secret")
	c, err := NewChatClient(Options{
		BaseURL:   srv.URL,
		Model:     "test-model",
		APIKeyEnv: "TEST_CHAT_KEY",
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestGenerateSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header: %s", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Stream {
			t.Error("expected stream=false")
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		resp := chatResponse{Choices: []chatChoice{
			{Message: chatMessage{Role: "assistant", Content: "答案内容"}},
		}}
		json.NewEncoder(w).Encode(resp)
	})

	got := c.Generate("问题")
	if got.Kind != port.CompletionOK {
		t.Fatalf("expected success, got kind=%d err=%v", got.Kind, got.Err)
	}
	if got.Text != "答案内容" {
		t.Errorf("unexpected text: %q", got.Text)
	}
}

func TestGenerateAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("server error"))
	})

	got := c.Generate("问题")
	if got.Kind != port.CompletionAPIError {
		t.Fatalf("expected API error, got kind=%d", got.Kind)
	}
	if got.StatusCode != 500 {
		t.Errorf("expected status 500, got %d", got.StatusCode)
	}
	if !strings.Contains(got.Body, "server error") {
		t.Errorf("expected body to carry the server message, got %q", got.Body)
	}
}

func TestGenerateTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	// Point the client at a closed port.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c.baseURL = srv.URL

	got := c.Generate("问题")
	if got.Kind != port.CompletionTransportError {
		t.Fatalf("expected transport error, got kind=%d", got.Kind)
	}
	if got.Err == nil {
		t.Error("expected a non-nil transport error")
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	got := c.Generate("问题")
	if got.Kind != port.CompletionTransportError {
		t.Fatalf("expected parse failure to surface as transport error, got kind=%d", got.Kind)
	}
}

func TestGenerateNoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	got := c.Generate("问题")
	if got.Kind != port.CompletionTransportError {
		t.Fatalf("expected error for empty choices, got kind=%d", got.Kind)
	}
}
