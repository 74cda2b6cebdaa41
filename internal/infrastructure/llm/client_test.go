package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

func sseServer(t *testing.T, chunks []string, check func(r *http.Request, body map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if check != nil {
			check(r, body)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range chunks {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestClient_StreamChat(t *testing.T) {
	var gotAuth string
	server := sseServer(t, []string{"Hel", "lo ", "world"}, func(r *http.Request, body map[string]any) {
		gotAuth = r.Header.Get("Authorization")
		if body["model"] != "gpt-4o" {
			t.Fatalf("unexpected model: %v", body["model"])
		}
		if body["stream"] != true {
			t.Fatalf("stream must be requested")
		}
		messages := body["messages"].([]any)
		first := messages[0].(map[string]any)
		if first["role"] != "system" || first["content"] != "You are a test." {
			t.Fatalf("system prompt not first: %v", first)
		}
	})
	defer server.Close()

	client := NewClient(Config{Name: "openai", APIKey: "key", BaseURL: server.URL, Model: "gpt-4o"})

	var deltas []string
	reply, err := client.StreamChat(context.Background(), "You are a test.",
		[]domain.ChatMessage{{Role: domain.RoleUser, Content: "Hi"}},
		func(d string) error {
			deltas = append(deltas, d)
			return nil
		})
	if err != nil {
		t.Fatalf("stream chat failed: %v", err)
	}
	if reply != "Hello world" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if strings.Join(deltas, "") != "Hello world" {
		t.Fatalf("deltas do not assemble the reply: %v", deltas)
	}
	if gotAuth != "Bearer key" {
		t.Fatalf("missing bearer auth: %q", gotAuth)
	}
}

func TestClient_StreamChat_Unconfigured(t *testing.T) {
	client := NewClient(Config{Name: "openai", BaseURL: "http://unused", Model: "gpt-4o"})

	if _, err := client.StreamChat(context.Background(), "", nil, nil); err != domain.ErrProviderUnavailable {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestClient_StreamChat_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Incorrect API key provided"}}`)
	}))
	defer server.Close()

	client := NewClient(Config{Name: "openai", APIKey: "bad", BaseURL: server.URL, Model: "gpt-4o"})

	_, err := client.StreamChat(context.Background(), "", []domain.ChatMessage{{Role: domain.RoleUser, Content: "Hi"}}, nil)
	if err == nil || !strings.Contains(err.Error(), "Incorrect API key provided") {
		t.Fatalf("expected provider error message, got %v", err)
	}
}

func TestReadStream_SkipsEmptyDeltasAndStopsAtDone(t *testing.T) {
	input := strings.Join([]string{
		`data: {"choices":[{"delta":{"content":"a"}}]}`,
		``,
		`data: {"choices":[{"delta":{}}]}`,
		`: keep-alive comment`,
		`data: {"choices":[{"delta":{"content":"b"}}]}`,
		`data: [DONE]`,
		`data: {"choices":[{"delta":{"content":"ignored"}}]}`,
	}, "\n")

	reply, err := readStream(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("read stream failed: %v", err)
	}
	if reply != "ab" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}
