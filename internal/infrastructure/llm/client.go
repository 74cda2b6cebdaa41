// Package llm talks to OpenAI-compatible chat-completions APIs. Both OpenAI
// and x.ai expose the same wire contract, so a single client covers every
// provider the application offers.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// Config describes one provider endpoint.
type Config struct {
	// Name is the provider identifier surfaced in user preferences
	// (e.g. "openai", "grok").
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

// Client streams chat completions from one provider.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		// No per-request deadline beyond the ambient context: long replies
		// stream for a while.
		http: &http.Client{},
	}
}

func (c *Client) Name() string { return c.cfg.Name }

// Configured reports whether the provider has an API key.
func (c *Client) Configured() bool { return c.cfg.APIKey != "" }

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// StreamChat posts the prompt with stream enabled and decodes the SSE frames
// the API replies with, invoking onDelta per content fragment. It returns
// the accumulated reply. onDelta may be nil.
func (c *Client) StreamChat(ctx context.Context, system string, messages []domain.ChatMessage, onDelta func(string) error) (string, error) {
	if !c.Configured() {
		return "", domain.ErrProviderUnavailable
	}

	wire := make([]wireMessage, 0, len(messages)+1)
	if system != "" {
		wire = append(wire, wireMessage{Role: domain.RoleSystem, Content: system})
	}
	for _, m := range messages {
		wire = append(wire, wireMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(chatRequest{Model: c.cfg.Model, Messages: wire, Stream: true})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: %s request: %w", c.cfg.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: %s request: %s", c.cfg.Name, apiError(resp.Body, resp.Status))
	}

	return readStream(resp.Body, onDelta)
}

// readStream consumes "data:" SSE frames until the [DONE] sentinel or EOF.
func readStream(body io.Reader, onDelta func(string) error) (string, error) {
	var reply strings.Builder

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", fmt.Errorf("llm: decode stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		reply.WriteString(delta)
		if onDelta != nil {
			if err := onDelta(delta); err != nil {
				return "", fmt.Errorf("llm: deliver chunk: %w", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("llm: read stream: %w", err)
	}

	return reply.String(), nil
}

// apiError extracts the provider's error message, falling back to the
// HTTP status.
func apiError(body io.Reader, status string) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return status
}
