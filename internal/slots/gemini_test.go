package slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/blackmouth-booking/internal/config"
)

func TestNewGeminiClient_NoKey(t *testing.T) {
	if c := NewGeminiClient(config.SlotsConfig{Model: "m"}); c != nil {
		t.Fatal("expected nil client without an API key")
	}
}

func TestGeminiClient_Generate(t *testing.T) {
	var gotPath, gotKey string
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[\"19:00\",\"19:30\"]\n"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient(config.SlotsConfig{APIKey: "k", Model: "gemini-2.5-flash", Endpoint: srv.URL + "/", Timeout: time.Second})
	out, err := c.Generate(context.Background(), "hola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `["19:00","19:30"]` {
		t.Errorf("unexpected text %q", out)
	}
	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "k" {
		t.Errorf("unexpected key %q", gotKey)
	}
	gc, _ := payload["generationConfig"].(map[string]any)
	if gc["responseMimeType"] != "application/json" {
		t.Errorf("expected JSON response mime type, got %v", gc["responseMimeType"])
	}
}

func TestGeminiClient_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"status", http.StatusForbidden, `{}`, "status 403"},
		{"empty", http.StatusOK, `{"candidates":[]}`, "empty gemini response"},
		{"garbage", http.StatusOK, `<html>`, "gemini response"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()
			c := NewGeminiClient(config.SlotsConfig{APIKey: "k", Model: "m", Endpoint: srv.URL})
			_, err := c.Generate(context.Background(), "p")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestGeminiClient_EngineFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	e := NewEngine(NewGeminiClient(config.SlotsConfig{APIKey: "k", Model: "m", Endpoint: srv.URL}))
	got := e.Suggest(context.Background(), day, 2)
	if len(got) != 6 || got[0] != "19:00" {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestNewEngine_NilGeminiClient(t *testing.T) {
	if NewEngine(NewGeminiClient(config.SlotsConfig{})).Live() {
		t.Fatal("an unconfigured gemini client must leave the engine in fallback mode")
	}
}
