package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient("", "llama3-8b-8192"); err == nil {
		t.Fatalf("expected error for missing API key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatalf("expected error for missing model")
	}
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"ok":true}`}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "llama3-8b-8192")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL

	got, err := client.Complete(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if got != `{"ok":true}` {
		t.Fatalf("unexpected completion: %q", got)
	}

	if captured.Model != "llama3-8b-8192" {
		t.Fatalf("unexpected model: %q", captured.Model)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.7 {
		t.Fatalf("unexpected temperature: %v", captured.Temperature)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format")
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Content != "analyze this" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid api key", "type": "auth"},
		})
	}))
	defer srv.Close()

	client, err := NewClient("bad-key", "llama3-8b-8192")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL

	_, err = client.Complete(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("expected API error passthrough, got %v", err)
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client, err := NewClient("key", "llama3-8b-8192")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}
