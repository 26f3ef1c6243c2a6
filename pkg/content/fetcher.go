package content

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"feed-reporter/pkg/config"
	"feed-reporter/pkg/httpclient"
	"feed-reporter/pkg/ratelimit"
)

// Fetcher retrieves article pages and extracts their main content. Every
// failure mode is converted into a typed Result; extraction never
// propagates an error to the caller.
type Fetcher struct {
	client    *httpclient.HTTPClient
	limiter   *ratelimit.Limiter
	extractor Extractor
	fallback  Extractor
}

// NewFetcher creates a content fetcher that tries the heuristic extractor
// first and falls back to the readability extractor when no block passes
// the structural heuristics.
func NewFetcher(limiter *ratelimit.Limiter) *Fetcher {
	return &Fetcher{
		client:    httpclient.NewClient(httpclient.BrowserClient, config.ArticleTimeout),
		limiter:   limiter,
		extractor: NewHeuristicExtractor(),
		fallback:  NewReadabilityExtractor(),
	}
}

// SetExtractor sets a custom primary extractor for the fetcher
func (f *Fetcher) SetExtractor(extractor Extractor) {
	f.extractor = extractor
}

// SetFallbackExtractor sets the extractor tried when the primary one finds
// no content. A nil fallback disables the second attempt.
func (f *Fetcher) SetFallbackExtractor(extractor Extractor) {
	f.fallback = extractor
}

// Extract fetches the page at url and recovers its main body text. The rate
// limiter is consulted before the request goes out.
func (f *Fetcher) Extract(ctx context.Context, url string) (result Result) {
	result = Result{URL: url}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("content: panic extracting %s: %v", url, r)
			result = Result{URL: url, Outcome: OutcomeNoContent}
		}
	}()

	if err := f.limiter.Wait(ctx, url); err != nil {
		result.Outcome = OutcomeFetchFailed
		result.Err = err
		return result
	}

	body, status, err := f.fetchPage(ctx, url)
	if err != nil {
		log.Printf("content: error fetching %s: %v", url, err)
		result.Outcome = OutcomeFetchFailed
		result.Err = err
		return result
	}
	if status != http.StatusOK {
		log.Printf("content: HTTP %d for %s", status, url)
		result.Outcome = OutcomeBadStatus
		result.StatusCode = status
		return result
	}

	text, err := f.extractor.ExtractText(body)
	if err != nil && f.fallback != nil {
		log.Printf("content: heuristic extraction failed for %s, trying readability: %v", url, err)
		text, err = f.fallback.ExtractText(body)
	}
	if err != nil {
		log.Printf("content: no main content found for %s: %v", url, err)
		result.Outcome = OutcomeNoContent
		result.Err = err
		return result
	}

	cleaned := Clean(text)
	if words := len(strings.Fields(cleaned)); words < config.MinWordCount {
		log.Printf("content: extracted content too short for %s (%d words < %d required)", url, words, config.MinWordCount)
		result.Outcome = OutcomeTooShort
		return result
	}

	result.Text = cleaned
	result.Outcome = OutcomeOK
	return result
}

// fetchPage issues the GET with browser-like headers and returns the body
// and status code.
func (f *Fetcher) fetchPage(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}

	return string(body), resp.StatusCode, nil
}
