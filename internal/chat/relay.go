package chat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const systemPrompt = "You are a helpful, polite assistant. Answer every question clearly and in a friendly tone."

// Relay forwards one message per request to an OpenAI-style chat
// completions endpoint, carrying the sender's bounded history along.
type Relay struct {
	client   *http.Client
	endpoint string
	apiKey   string
	model    string
	history  *History
}

func NewRelay(endpoint, apiKey, model string, history *History) *Relay {
	return &Relay{
		client:   &http.Client{Timeout: 60 * time.Second},
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		history:  history,
	}
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (r *Relay) Reply(ctx context.Context, sender, text string) (string, error) {
	messages := []Message{{Role: RoleSystem, Content: systemPrompt}}
	messages = append(messages, r.history.Get(sender)...)
	messages = append(messages, Message{Role: RoleUser, Content: text})

	body, err := json.Marshal(completionRequest{Model: r.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("completion error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	reply := completion.Choices[0].Message.Content
	r.history.Append(sender,
		Message{Role: RoleUser, Content: text},
		Message{Role: RoleAssistant, Content: reply},
	)

	return reply, nil
}
