package feed

import (
	"fmt"
	"io"

	"feed-reporter/pkg/config"
	"feed-reporter/pkg/httpclient"
)

// FetchError reports a failed feed retrieval.
type FetchError struct {
	URL        string
	StatusCode int // zero when the request never completed
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching feed %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves raw feed documents over HTTP. Successful results are
// cached for the process lifetime, so a cache hit never re-issues the
// network call.
type Fetcher struct {
	client *httpclient.HTTPClient
	cache  *lruCache
}

// NewFetcher creates a feed fetcher with the default timeout and cache size
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: httpclient.NewClient(httpclient.FeedClient, config.FeedTimeout),
		cache:  newLRUCache(config.FeedCacheSize),
	}
}

// Fetch retrieves the raw feed document at the given URL
func (f *Fetcher) Fetch(url string) (string, error) {
	if body, ok := f.cache.get(url); ok {
		return body, nil
	}

	resp, err := f.client.Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	document := string(body)
	f.cache.put(url, document)
	return document, nil
}
