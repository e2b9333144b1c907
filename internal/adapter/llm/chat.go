package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"wikiqa/internal/port"
)

// ChatClient calls an OpenAI-compatible /chat/completions endpoint.
// Failures are decoded once, here, into a port.Completion variant; they
// are never returned as Go errors.
type ChatClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Options configures a chat completion client.
type Options struct {
	BaseURL   string
	Model     string
	APIKeyEnv string
	Timeout   time.Duration
}

// NewChatClient creates a chat client from the given options. The API
// key is read from the named environment variable.
func NewChatClient(opts Options) (*ChatClient, error) {
	apiKey := os.Getenv(opts.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", opts.APIKeyEnv)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &ChatClient{
		apiKey:  apiKey,
		model:   opts.Model,
		baseURL: opts.BaseURL,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
	}, nil
}

// Generate sends the prompt as a single user message and decodes the
// first choice. No retries: a failure surfaces once in the Completion.
func (c *ChatClient) Generate(prompt string) port.Completion {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return port.Completion{Kind: port.CompletionTransportError, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequest("POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return port.Completion{Kind: port.CompletionTransportError, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return port.Completion{Kind: port.CompletionTransportError, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return port.Completion{Kind: port.CompletionTransportError, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return port.Completion{
			Kind:       port.CompletionAPIError,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return port.Completion{Kind: port.CompletionTransportError, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if len(chatResp.Choices) == 0 {
		return port.Completion{Kind: port.CompletionTransportError, Err: fmt.Errorf("response contains no choices")}
	}

	return port.Completion{Kind: port.CompletionOK, Text: chatResp.Choices[0].Message.Content}
}

func (c *ChatClient) ModelName() string {
	return c.model
}
