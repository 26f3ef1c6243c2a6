package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feed-reporter/pkg/ratelimit"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(ratelimit.New(time.Millisecond))
}

func articleHTML(paragraphs int) string {
	var b strings.Builder
	b.WriteString(`<html><body><article>`)
	for i := 0; i < paragraphs; i++ {
		b.WriteString("<p>The council approved a detailed plan to expand regional transit service next year. ")
		b.WriteString("Officials expect construction to begin in the spring pending final budget review.</p>")
	}
	b.WriteString(`</article></body></html>`)
	return b.String()
}

func TestExtractSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML(4)))
	}))
	defer server.Close()

	fetcher := newTestFetcher()

	result := fetcher.Extract(context.Background(), server.URL)
	if !result.OK() {
		t.Fatalf("expected successful extraction, got outcome %v (err: %v)", result.Outcome, result.Err)
	}
	if !strings.Contains(result.Text, "regional transit service") {
		t.Errorf("extracted text missing article body: %q", result.Text)
	}
	if result.URL != server.URL {
		t.Errorf("result URL %q does not match input %q", result.URL, server.URL)
	}
}

func TestExtractSendsBrowserHeaders(t *testing.T) {
	var userAgent, referer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		referer = r.Header.Get("Referer")
		w.Write([]byte(articleHTML(4)))
	}))
	defer server.Close()

	fetcher := newTestFetcher()
	fetcher.Extract(context.Background(), server.URL)

	if !strings.HasPrefix(userAgent, "Mozilla/5.0") {
		t.Errorf("expected browser-like User-Agent, got %q", userAgent)
	}
	if !strings.Contains(referer, "127.0.0.1") {
		t.Errorf("expected referer synthesized from target domain, got %q", referer)
	}
}

func TestExtractNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := newTestFetcher()

	result := fetcher.Extract(context.Background(), server.URL)
	if result.OK() {
		t.Fatal("expected failure for 404 response")
	}
	if result.Outcome != OutcomeBadStatus {
		t.Errorf("expected OutcomeBadStatus, got %v", result.Outcome)
	}
	if result.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", result.StatusCode)
	}
	if result.Text != "" {
		t.Errorf("expected empty text on failure, got %q", result.Text)
	}
}

func TestExtractTooShortContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><article><p>` +
			`A short update was posted today about the ongoing maintenance window for the service cluster. ` +
			`Engineers expect normal operation to resume within the hour according to the status page.` +
			`</p></article></body></html>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher()

	result := fetcher.Extract(context.Background(), server.URL)
	if result.Outcome != OutcomeTooShort {
		t.Errorf("expected OutcomeTooShort, got %v", result.Outcome)
	}
}

func TestExtractNetworkError(t *testing.T) {
	fetcher := newTestFetcher()

	result := fetcher.Extract(context.Background(), "http://127.0.0.1:1/article")
	if result.Outcome != OutcomeFetchFailed {
		t.Errorf("expected OutcomeFetchFailed, got %v", result.Outcome)
	}
	if result.Err == nil {
		t.Error("expected underlying error to be recorded")
	}
}

func TestExtractNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><nav>Home</nav></body></html>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher()
	fetcher.SetFallbackExtractor(nil)

	result := fetcher.Extract(context.Background(), server.URL)
	if result.Outcome != OutcomeNoContent {
		t.Errorf("expected OutcomeNoContent, got %v", result.Outcome)
	}
}

type stubExtractor struct {
	text  string
	err   error
	calls int
}

func (s *stubExtractor) ExtractText(string) (string, error) {
	s.calls++
	return s.text, s.err
}

func stubArticleText() string {
	line := "The council approved a detailed plan to expand regional transit service next year " +
		"and officials expect construction to begin in the spring pending final budget review."
	return line + "\n" + line + "\n" + line
}

func TestExtractUsesFallbackExtractor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div id="app"></div></body></html>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher()
	primary := &stubExtractor{err: errors.New("no main content block found")}
	fallback := &stubExtractor{text: stubArticleText()}
	fetcher.SetExtractor(primary)
	fetcher.SetFallbackExtractor(fallback)

	result := fetcher.Extract(context.Background(), server.URL)
	if !result.OK() {
		t.Fatalf("expected fallback extraction to succeed, got outcome %v (err: %v)", result.Outcome, result.Err)
	}
	if fallback.calls != 1 {
		t.Errorf("expected fallback to be consulted once, got %d calls", fallback.calls)
	}
	if !strings.Contains(result.Text, "regional transit service") {
		t.Errorf("expected fallback text in result, got %q", result.Text)
	}
}

func TestExtractSkipsFallbackOnPrimarySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML(4)))
	}))
	defer server.Close()

	fetcher := newTestFetcher()
	fallback := &stubExtractor{err: errors.New("should not be reached")}
	fetcher.SetFallbackExtractor(fallback)

	result := fetcher.Extract(context.Background(), server.URL)
	if !result.OK() {
		t.Fatalf("expected successful extraction, got outcome %v (err: %v)", result.Outcome, result.Err)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback should not be consulted when the primary extractor succeeds, got %d calls", fallback.calls)
	}
}

func TestExtractNoContentWhenBothExtractorsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div id="app"></div></body></html>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher()
	fetcher.SetExtractor(&stubExtractor{err: errors.New("no main content block found")})
	fetcher.SetFallbackExtractor(&stubExtractor{err: errors.New("no readable content found")})

	result := fetcher.Extract(context.Background(), server.URL)
	if result.Outcome != OutcomeNoContent {
		t.Errorf("expected OutcomeNoContent, got %v", result.Outcome)
	}
}

func TestExtractHonorsRateLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML(4)))
	}))
	defer server.Close()

	delay := 60 * time.Millisecond
	fetcher := NewFetcher(ratelimit.New(delay))

	start := time.Now()
	fetcher.Extract(context.Background(), server.URL+"/first")
	fetcher.Extract(context.Background(), server.URL+"/second")

	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("expected at least %v between same-domain fetches, got %v", delay, elapsed)
	}
}
