package scheduler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"feed-reporter/pkg/content"
	"feed-reporter/pkg/ratelimit"
)

// ContentFetcher retrieves and extracts the main content for one article URL
type ContentFetcher interface {
	Extract(ctx context.Context, url string) content.Result
}

// Scheduler fetches article URLs grouped by domain: sequentially within a
// domain so the rate limiter's delay invariant holds, concurrently across
// domains.
type Scheduler struct {
	fetcher ContentFetcher
}

// New creates a scheduler over the given content fetcher
func New(fetcher ContentFetcher) *Scheduler {
	return &Scheduler{fetcher: fetcher}
}

// FetchAll fetches all URLs and returns one result per input URL, aligned
// with the input order regardless of completion order. A failed fetch for
// one URL never cancels sibling fetches.
func (s *Scheduler) FetchAll(ctx context.Context, urls []string) []content.Result {
	groups := groupByDomain(urls)
	resultChan := make(chan content.Result, len(urls))

	var g errgroup.Group
	for _, group := range groups {
		group := group
		g.Go(func() error {
			for _, url := range group {
				resultChan <- s.fetcher.Extract(ctx, url)
			}
			return nil
		})
	}
	g.Wait()
	close(resultChan)

	// Correlate results back to input positions via the URL; if a URL
	// repeats, the last write wins.
	byURL := make(map[string]content.Result, len(urls))
	for result := range resultChan {
		byURL[result.URL] = result
	}

	results := make([]content.Result, len(urls))
	for i, url := range urls {
		result, ok := byURL[url]
		if !ok {
			result = content.Result{URL: url, Outcome: content.OutcomeFetchFailed}
		}
		results[i] = result
	}
	return results
}

// groupByDomain groups URLs by host, preserving input order within each group
func groupByDomain(urls []string) [][]string {
	var order []string
	groups := make(map[string][]string)

	for _, url := range urls {
		domain := ratelimit.Domain(url)
		if _, ok := groups[domain]; !ok {
			order = append(order, domain)
		}
		groups[domain] = append(groups[domain], url)
	}

	grouped := make([][]string, 0, len(order))
	for _, domain := range order {
		grouped = append(grouped, groups[domain])
	}
	return grouped
}
