package openaicompat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"time-tracking-assistant/pkg/openaicompat"
)

func TestNew_Validation(t *testing.T) {
	if _, err := openaicompat.New(openaicompat.Config{Provider: "deepseek", Model: "deepseek-chat"}); err == nil {
		t.Error("expected error for missing API key")
	}
	if _, err := openaicompat.New(openaicompat.Config{Provider: "deepseek", APIKey: "k"}); err == nil {
		t.Error("expected error for missing model")
	}
}

func TestGenerateContent(t *testing.T) {
	var gotReq map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "deepseek-chat",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Starting **Deep Work**.\nCommand: start: Deep Work"},
				"finish_reason": "stop"
			}],
			"usage": {"prompt_tokens": 40, "completion_tokens": 10, "total_tokens": 50}
		}`))
	}))
	defer ts.Close()

	client, err := openaicompat.New(openaicompat.Config{
		Provider: "deepseek",
		APIKey:   "test-key",
		Model:    "deepseek-chat",
		BaseURL:  ts.URL,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.Name() != "deepseek" || client.Model() != "deepseek-chat" {
		t.Errorf("unexpected identity %s/%s", client.Name(), client.Model())
	}

	resp, err := client.GenerateContent(context.Background(), &openaicompat.Request{
		SystemInstruction: "be brief",
		Prompt:            "starting on deep work",
		JSON:              true,
	})
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}

	if !strings.Contains(resp.Text, "Command: start: Deep Work") {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.TotalTokens != 50 {
		t.Errorf("TotalTokens = %d, want 50", resp.TotalTokens)
	}

	msgs, _ := gotReq["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(msgs))
	}
	if _, ok := gotReq["response_format"]; !ok {
		t.Errorf("JSON mode should set response_format")
	}
}
