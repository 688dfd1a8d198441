package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newChatServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIProviderSendsMessages(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"gpt-3.5-turbo","choices":[{"index":0,"message":{"role":"assistant","content":"Use Righteous Fire."},"finish_reason":"stop"}],"usage":{"prompt_tokens":12,"completion_tokens":4}}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatibleProvider("openai", "key", "gpt-3.5-turbo", srv.URL)
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "be brief"},
			{Role: RoleUser, Content: "best league starter?"},
		},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "Use Righteous Fire." || resp.Choices != 1 {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.InputTokens != 12 || resp.OutputTokens != 4 {
		t.Errorf("unexpected usage %+v", resp)
	}
	if got.Model != "gpt-3.5-turbo" || got.MaxTokens != 1000 {
		t.Errorf("unexpected request model=%q max_tokens=%d", got.Model, got.MaxTokens)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "best league starter?" {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
}

func TestOpenAIProviderEmptyChoices(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, `{"model":"gpt-3.5-turbo","choices":[]}`)
	p := NewOpenAICompatibleProvider("openai", "key", "gpt-3.5-turbo", srv.URL)

	resp, err := p.Complete(context.Background(), CompletionRequest{Messages: []Message{{Role: RoleUser, Content: "?"}}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Choices != 0 || resp.Content != "" {
		t.Errorf("expected no choices, got %+v", resp)
	}
}

func TestOpenAIProviderStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error body", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached","type":"requests"}}`},
		{"plain body", http.StatusBadGateway, `upstream unavailable`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newChatServer(t, tt.status, tt.body)
			p := NewOpenAICompatibleProvider("openai", "key", "gpt-3.5-turbo", srv.URL)

			_, err := p.Complete(context.Background(), CompletionRequest{Messages: []Message{{Role: RoleUser, Content: "?"}}})
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected *StatusError, got %T: %v", err, err)
			}
			if se.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, se.Code)
			}
		})
	}
}
