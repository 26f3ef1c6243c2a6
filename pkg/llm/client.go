package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"feed-reporter/pkg/config"
)

// ErrMissingAPIKey indicates the required summarization credential is absent.
// No useful summarization work can proceed without it, so callers fail fast.
var ErrMissingAPIKey = errors.New("OAI_COMPATIBLE_API_KEY not set")

// FailedSummary is the sentinel returned when a per-article summarization
// call fails.
const FailedSummary = "Failed to generate summary"

const summarizePrompt = "Summarize the following article in a few concise sentences. " +
	"Focus on the key facts, what changed, and why it matters. Do not editorialize."

const narrativePrompt = "You are given a series of article summaries separated by '---'. " +
	"Weave them into a single cohesive news narrative, grouping related stories together. " +
	"Keep the tone factual and readable."

// Client talks to an OpenAI-compatible chat completions endpoint and
// implements both the summarizer and narrator collaborators.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	apiBase    string
}

// NewClient creates a chat client from configuration. Returns
// ErrMissingAPIKey when no credential is configured.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &Client{
		httpClient: &http.Client{Timeout: config.SummaryTimeout},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		apiBase:    strings.TrimRight(cfg.APIBase, "/"),
	}, nil
}

// Summarize produces a summary for one article, truncating the content to
// the configured bound before submission. Failures are logged and yield the
// sentinel summary.
func (c *Client) Summarize(ctx context.Context, articleContent, sourceURL string) string {
	prompt := fmt.Sprintf("%s\n\nArticle:\nURL: %s\n%s",
		summarizePrompt, sourceURL, truncate(articleContent, config.MaxSummaryInput))

	summary, err := c.chat(ctx, prompt, 500)
	if err != nil {
		log.Printf("llm: error summarizing article %s: %v", sourceURL, err)
		return FailedSummary
	}
	return summary
}

// Synthesize generates the final narrative from all summaries. Each summary
// is truncated before the summaries are joined with a separator.
func (c *Client) Synthesize(ctx context.Context, summaries []string) (string, error) {
	truncated := make([]string, len(summaries))
	for i, summary := range summaries {
		truncated[i] = truncate(summary, config.MaxSummaryLength)
	}

	prompt := narrativePrompt + "\n\n" + strings.Join(truncated, "\n\n---\n\n")
	return c.chat(ctx, prompt, 4000)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chat issues one chat completion request and returns the first choice
func (c *Client) chat(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("completion request returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response contains no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// truncate bounds s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
