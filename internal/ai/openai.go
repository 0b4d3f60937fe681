package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// remoteTimeout bounds the completion call; a hung request counts as a
// remote failure and the fallback answers instead.
const remoteTimeout = 10 * time.Second

// OpenAIAdvisor asks a chat completion endpoint for a priority label
// and a justification. Transport, status and parse errors are returned
// as-is so the fallback wrapper can degrade to the heuristic. One
// best-effort call per invocation, no retries.
type OpenAIAdvisor struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewOpenAIAdvisor(apiKey, model string) *OpenAIAdvisor {
	return &OpenAIAdvisor{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: remoteTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (a *OpenAIAdvisor) Assess(ctx context.Context, title, description string) (Assessment, error) {
	if err := validateInput(title); err != nil {
		return Assessment{}, err
	}

	body := chatRequest{
		Model: a.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildUserPrompt(title, description)},
		},
		MaxTokens:   150,
		Temperature: 0.3,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Assessment{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		a.BaseURL+"/chat/completions",
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return Assessment{}, err
	}
	req.Header.Set("Authorization", "Bearer "+a.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Client.Do(req)
	if err != nil {
		return Assessment{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return Assessment{}, fmt.Errorf("openai: unexpected status %d: %s",
			res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return Assessment{}, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Assessment{}, fmt.Errorf("openai: response has no choices")
	}

	return parseAssessment(parsed.Choices[0].Message.Content)
}

// parseAssessment reads the PRIORITY / REASON lines the system prompt
// asks for. A reply without a recognized label is a parse failure.
func parseAssessment(content string) (Assessment, error) {
	a := Assessment{Strategy: StrategyOpenAI}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "PRIORITY:"):
			label := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "PRIORITY:")))
			if label == PriorityLow || label == PriorityMedium || label == PriorityHigh {
				a.Priority = label
			}
		case strings.HasPrefix(line, "REASON:"):
			a.Reason = strings.TrimSpace(strings.TrimPrefix(line, "REASON:"))
		}
	}

	if a.Priority == "" {
		return Assessment{}, fmt.Errorf("openai: no recognized priority label in %q", content)
	}
	if a.Reason == "" {
		a.Reason = "Model suggested " + a.Priority + " priority without further explanation"
	}

	return a, nil
}
