package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// HTTP configuration
const (
	// MinRequestDelay is the minimum interval between two requests to the
	// same domain.
	MinRequestDelay = 1 * time.Second

	// FeedTimeout is the per-request timeout for feed documents.
	FeedTimeout = 10 * time.Second

	// ArticleTimeout is the per-request timeout for article pages.
	ArticleTimeout = 5 * time.Second

	// SummaryTimeout is the per-request timeout for summarization calls.
	SummaryTimeout = 30 * time.Second
)

// Content processing thresholds
const (
	// MinWordCount is the minimum word count for extracted article content.
	MinWordCount = 50

	// MinTextBlockSize is the minimum character length a content block must
	// yield before a selector rule accepts it.
	MinTextBlockSize = 100
)

// Pipeline configuration
const (
	// FeedWorkers bounds the number of concurrent feed fetches.
	FeedWorkers = 10

	// FeedCacheSize bounds the in-process feed document cache.
	FeedCacheSize = 100

	// MaxEntryAge is the recency threshold for feed entries.
	MaxEntryAge = 24 * time.Hour
)

// Summarization limits
const (
	// MaxSummaryInput caps the article content submitted per summary.
	MaxSummaryInput = 4000

	// MaxSummaryLength caps each summary joined into the narrative.
	MaxSummaryLength = 2000
)

// MessageLimit is the maximum Discord message length.
const MessageLimit = 2000

// UserAgents is the pool of browser identities rotated across article
// requests.
var UserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:120.0) Gecko/20100101 Firefox/120.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Config holds environment-backed settings.
type Config struct {
	APIKey     string // OpenAI-compatible API key, required for summarization
	Model      string
	APIBase    string
	WebhookURL string // optional Discord webhook for narrative delivery
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIKey:     os.Getenv("OAI_COMPATIBLE_API_KEY"),
		Model:      getEnv("OAI_COMPATIBLE_MODEL", "gpt-4o-mini"),
		APIBase:    getEnv("OAI_COMPATIBLE_API_BASE", "https://api.openai.com/v1"),
		WebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
