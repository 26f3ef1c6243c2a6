package httpclient

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"feed-reporter/pkg/config"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// FeedClient uses plain headers for feed endpoints, which generally do
	// not gate on User-Agent.
	FeedClient ClientType = "feed"

	// BrowserClient rotates browser-like headers to avoid trivial bot
	// blocking on article pages.
	BrowserClient ClientType = "browser"
)

// HTTPClient wraps an http.Client with a header profile and timeout
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
}

// NewClient creates a new HTTP client with the specified type and timeout
func NewClient(clientType ClientType, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		clientType: clientType,
	}
}

// Do executes an HTTP request with the appropriate headers for the client type
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		req.Header.Set("User-Agent", config.UserAgents[rand.Intn(len(config.UserAgents))])
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")
		req.Header.Set("DNT", "1")
		req.Header.Set("Connection", "keep-alive")
		req.Header.Set("Upgrade-Insecure-Requests", "1")
		req.Header.Set("Referer", syntheticReferer(req.URL))

	default:
		// FeedClient: use Go's default User-Agent
	}
}

// syntheticReferer builds a plausible search-engine referer for the target domain
func syntheticReferer(u *url.URL) string {
	return fmt.Sprintf("https://www.google.com/search?q=%s", u.Host)
}
