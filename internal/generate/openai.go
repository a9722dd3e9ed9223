// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

// openAIBaseURL is the public OpenAI API base, used when no BaseURL is set.
const openAIBaseURL = "https://api.openai.com/v1"

const defaultTimeout = 60 * time.Second

// OpenAIBackend calls the OpenAI chat-completions API. Any server speaking
// the same protocol works by pointing BaseURL at it. Calls are not retried;
// a failure surfaces to the caller as-is.
type OpenAIBackend struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// NewOpenAIBackend validates cfg and builds a backend. Model and APIKey are
// required; BaseURL and Timeout fall back to defaults.
func NewOpenAIBackend(cfg types.GeneratorConfig) (*OpenAIBackend, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key required (use --api-key, OPENAI_API_KEY, or .secrets/openai-api-key)", ErrInvalidConfig)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &OpenAIBackend{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}, nil
}

// chatRequest is the request body for the chat completions endpoint.
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat chatFormat    `json:"response_format"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatFormat is the response-format hint. Type "json_object" constrains the
// model to emit a single JSON object.
type chatFormat struct {
	Type string `json:"type"`
}

// chatResponse is the subset of the response body the generator needs.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatUsage struct {
	TotalTokens int `json:"total_tokens"`
}

// chatError is the error envelope the API returns on non-200 statuses.
type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one system and one user message and returns the reply text
// with the reported token usage.
func (b *OpenAIBackend) Complete(ctx context.Context, system, user string) (Completion, error) {
	reqBody := chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: chatFormat{Type: "json_object"},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Completion{}, fmt.Errorf("marshaling request: %w", err)
	}

	base := b.BaseURL
	if base == "" {
		base = openAIBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return Completion{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr chatError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return Completion{}, fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return Completion{}, fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return Completion{}, fmt.Errorf("decoding OpenAI response: %w", err)
	}

	if len(cResp.Choices) == 0 {
		return Completion{}, fmt.Errorf("OpenAI API returned no choices")
	}

	return Completion{
		Text:        cResp.Choices[0].Message.Content,
		TotalTokens: cResp.Usage.TotalTokens,
	}, nil
}
