package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func completionJSON(content string) string {
	return `{"id":"cmpl-1","object":"chat.completion","created":1,"model":"test",` +
		`"choices":[{"index":0,"message":{"role":"assistant","content":"` + content + `"},"finish_reason":"stop"}]}`
}

func TestFastChatNotConfiguredMakesNoCalls(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte(completionJSON("should never be seen")))
	}))
	defer server.Close()

	s := NewFastChatService(server.URL, "", "test-model", zap.NewNop())

	got := s.Chat(context.Background(), "hello", "")
	if got != "Sorry, Groq API key is not configured." {
		t.Fatalf("got %q", got)
	}
	if got := s.VoiceChat(context.Background(), "hello"); got != "Sorry, Groq API key is not configured." {
		t.Fatalf("voice variant got %q", got)
	}
	if atomic.LoadInt64(&hits) != 0 {
		t.Fatalf("recorded %d outbound HTTP calls, want 0", hits)
	}
}

func TestFastChatSelectsPromptAndBudget(t *testing.T) {
	type captured struct {
		MaxTokens   int     `json:"max_tokens"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var last captured
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&last); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionJSON("  the answer  ")))
	}))
	defer server.Close()

	s := NewFastChatService(server.URL, "test-key", "test-model", zap.NewNop())

	if got := s.Chat(context.Background(), "plain question", ""); got != "the answer" {
		t.Fatalf("chat answer = %q", got)
	}
	if last.MaxTokens != chatMaxTokens {
		t.Fatalf("chat max_tokens = %d, want %d", last.MaxTokens, chatMaxTokens)
	}
	if !strings.Contains(last.Messages[0].Content, "official assistant") {
		t.Fatal("plain chat must use the general system prompt")
	}

	s.Chat(context.Background(), "doc question", "the document body")
	if last.MaxTokens != documentMaxTokens {
		t.Fatalf("document max_tokens = %d, want %d", last.MaxTokens, documentMaxTokens)
	}
	if !strings.Contains(last.Messages[0].Content, "document analysis expert") {
		t.Fatal("document questions must use the document system prompt")
	}
	if !strings.Contains(last.Messages[1].Content, "Document Content:\nthe document body") {
		t.Fatalf("document context missing from user message: %q", last.Messages[1].Content)
	}

	s.VoiceChat(context.Background(), "voice question")
	if last.MaxTokens != voiceMaxTokens {
		t.Fatalf("voice max_tokens = %d, want %d", last.MaxTokens, voiceMaxTokens)
	}
	if !strings.Contains(last.Messages[0].Content, "VOICE MODE RULES") {
		t.Fatal("voice calls must use the voice system prompt")
	}
}

func TestFastChatErrorNormalization(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusUnauthorized, "Sorry, there's an issue with the API key."},
		{http.StatusTooManyRequests, "Sorry, too many requests. Please wait a moment and try again."},
		{http.StatusBadGateway, "Sorry, I'm having trouble connecting (Error: 502)."},
	}
	for _, tc := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"error":{"message":"upstream says no","type":"invalid_request_error"}}`))
		}))

		s := NewFastChatService(server.URL, "test-key", "test-model", zap.NewNop())
		if got := s.Chat(context.Background(), "hello", ""); got != tc.want {
			t.Errorf("status %d: got %q, want %q", tc.status, got, tc.want)
		}
		server.Close()
	}
}

func TestFastChatUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	s := NewFastChatService(server.URL, "test-key", "test-model", zap.NewNop())
	if got := s.Chat(context.Background(), "hello", ""); got != "Sorry, something went wrong on my end." {
		t.Fatalf("got %q", got)
	}
	if got := s.VoiceChat(context.Background(), "hello"); got != "Sorry, something went wrong." {
		t.Fatalf("voice fallback got %q", got)
	}
}
