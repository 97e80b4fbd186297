package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildHTTPRequest_Gemini(t *testing.T) {
	prov := DefaultProviders()[ProviderGoogle]
	prov.APIKey = "k"

	endpoint, headers, body, err := buildHTTPRequest(prov, "sys", "user", formatGeminiNative)
	if err != nil {
		t.Fatalf("buildHTTPRequest: %v", err)
	}
	if !strings.HasSuffix(endpoint, "/v1beta/models/gemini-2.0-flash:generateContent") {
		t.Errorf("endpoint = %q", endpoint)
	}
	if headers["x-goog-api-key"] != "k" {
		t.Errorf("headers = %v", headers)
	}
	if !strings.Contains(string(body), "systemInstruction") {
		t.Errorf("body missing system instruction: %s", body)
	}
}

func TestBuildHTTPRequest_OpenAIChat(t *testing.T) {
	prov := DefaultProviders()[ProviderGroq]
	prov.APIKey = "k"

	endpoint, headers, body, err := buildHTTPRequest(prov, "sys", "user", formatOpenAIChat)
	if err != nil {
		t.Fatalf("buildHTTPRequest: %v", err)
	}
	if !strings.HasSuffix(endpoint, "/chat/completions") {
		t.Errorf("endpoint = %q", endpoint)
	}
	if headers["Authorization"] != "Bearer k" {
		t.Errorf("headers = %v", headers)
	}
	if !strings.Contains(string(body), `"role":"system"`) {
		t.Errorf("body missing system message: %s", body)
	}
}

func TestBuildHTTPRequest_OllamaPath(t *testing.T) {
	prov := DefaultProviders()[ProviderOllama]
	endpoint, headers, _, err := buildHTTPRequest(prov, "sys", "user", formatOpenAIChat)
	if err != nil {
		t.Fatalf("buildHTTPRequest: %v", err)
	}
	if !strings.HasSuffix(endpoint, "/v1/chat/completions") {
		t.Errorf("endpoint = %q", endpoint)
	}
	if _, ok := headers["Authorization"]; ok {
		t.Error("local service should not send an Authorization header")
	}
}

func TestExtractResponseText(t *testing.T) {
	openAI := `{"choices": [{"message": {"content": "Привет"}}]}`
	if got, err := extractResponseText([]byte(openAI)); err != nil || got != "Привет" {
		t.Errorf("openai shape: %q, %v", got, err)
	}

	gemini := `{"candidates": [{"content": {"parts": [{"text": "Привет"}]}}]}`
	if got, err := extractResponseText([]byte(gemini)); err != nil || got != "Привет" {
		t.Errorf("gemini shape: %q, %v", got, err)
	}

	apiErr := `{"error": {"message": "quota exceeded"}}`
	if _, err := extractResponseText([]byte(apiErr)); err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("api error: %v", err)
	}

	if _, err := extractResponseText([]byte(`{"unexpected": true}`)); err == nil {
		t.Error("unextractable response should fail")
	}
	if _, err := extractResponseText([]byte("not json")); err == nil {
		t.Error("invalid JSON should fail")
	}
}

func TestCallProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "done"}}]}`))
	}))
	defer srv.Close()

	prov := Provider{ID: ProviderCustomOpenAI, BaseURL: srv.URL, APIKey: "k", Model: "m"}
	got, err := callProvider(context.Background(), prov, "sys", "user", false)
	if err != nil {
		t.Fatalf("callProvider: %v", err)
	}
	if got != "done" {
		t.Errorf("response = %q", got)
	}
}

func TestCallProvider_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	prov := Provider{ID: ProviderCustomOpenAI, BaseURL: srv.URL, Model: "m"}
	if _, err := callProvider(context.Background(), prov, "sys", "user", false); err == nil {
		t.Error("expected error for HTTP 502")
	}
}
