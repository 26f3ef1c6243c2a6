package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"feed-reporter/pkg/config"
)

// SplitContent splits content into chunks that fit the message limit,
// preserving paragraph boundaries where possible. Paragraphs longer than
// the limit are hard-split.
func SplitContent(content string) []string {
	if len(content) <= config.MessageLimit {
		return []string{content}
	}

	var chunks []string
	current := ""

	for _, paragraph := range strings.Split(content, "\n\n") {
		for len(paragraph) > config.MessageLimit {
			if current != "" {
				chunks = append(chunks, strings.TrimSpace(current))
				current = ""
			}
			cut := splitPoint(paragraph, config.MessageLimit)
			chunks = append(chunks, strings.TrimSpace(paragraph[:cut]))
			paragraph = paragraph[cut:]
		}

		if len(current)+len(paragraph)+2 > config.MessageLimit {
			if current != "" {
				chunks = append(chunks, strings.TrimSpace(current))
			}
			current = paragraph
		} else {
			if current != "" {
				current += "\n\n"
			}
			current += paragraph
		}
	}

	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}

// splitPoint finds the largest rune-safe cut at or below limit bytes
func splitPoint(s string, limit int) int {
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return cut
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// Webhook posts narrative text to a Discord channel via an incoming webhook
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook poster
func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Post delivers content to the webhook, one message per chunk
func (w *Webhook) Post(ctx context.Context, content string) error {
	if w.url == "" {
		return errors.New("discord webhook URL not set")
	}

	for _, chunk := range SplitContent(content) {
		if err := w.postChunk(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (w *Webhook) postChunk(ctx context.Context, chunk string) error {
	payload, err := json.Marshal(map[string]string{"content": chunk})
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting message: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
