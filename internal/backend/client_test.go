package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestChat_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/synthetic/chat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", r.Header.Get("Content-Type"))
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.UserMessage != "¿Cuánto cuesta?" || req.Archetype != "CONTROLLER" {
			t.Errorf("unexpected request: %+v", req)
		}
		if req.CreativityLevel != 70 || req.Temperature != 0.7 {
			t.Errorf("expected creativity 70 / temperature 0.7, got %d / %f", req.CreativityLevel, req.Temperature)
		}
		if req.Language != "es" || req.CulturalContext != "honduras" {
			t.Errorf("unexpected locale %q/%q", req.Language, req.CulturalContext)
		}
		if len(req.ConversationHistory) != 1 {
			t.Errorf("expected 1 history message, got %d", len(req.ConversationHistory))
		}

		json.NewEncoder(w).Encode(map[string]any{"success": true, "response": "Pues mire, depende del precio."})
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", "test-token", 5*time.Second)
	got, err := c.Chat(context.Background(), ChatRequest{
		UserMessage:         "¿Cuánto cuesta?",
		Archetype:           "CONTROLLER",
		CreativityLevel:     70,
		ConversationHistory: []HistoryMessage{{Role: "user", Content: "Hola"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Pues mire, depende del precio." {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestChat_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{"error": "model overloaded"})
		}},
		{"explicit failure", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "rag offline"})
		}},
		{"empty response", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"success": true, "response": "  "})
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient(server.URL, "", 5*time.Second)
			if _, err := c.Chat(context.Background(), ChatRequest{UserMessage: "hola"}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestChat_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{"response": "tarde"})
	}))
	defer server.Close()

	c := NewClient(server.URL, "", 20*time.Millisecond)
	if _, err := c.Chat(context.Background(), ChatRequest{UserMessage: "hola"}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestChat_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("expected no Authorization header, got %q", h)
		}
		json.NewEncoder(w).Encode(map[string]any{"response": "ok"})
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, "", time.Second).Chat(context.Background(), ChatRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealth(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	c := NewClient(server.URL, "", time.Second)
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
	status.Store(http.StatusServiceUnavailable)
	if err := c.Health(context.Background()); err == nil {
		t.Fatal("expected error for 503")
	}
}

func TestTemperature(t *testing.T) {
	tests := map[int]float64{-10: 0, 0: 0, 70: 0.7, 100: 1, 150: 1}
	for in, want := range tests {
		if got := Temperature(in); got != want {
			t.Errorf("Temperature(%d) = %f, want %f", in, got, want)
		}
	}
}
