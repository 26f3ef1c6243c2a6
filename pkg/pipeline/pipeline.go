package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"feed-reporter/pkg/config"
	"feed-reporter/pkg/content"
	"feed-reporter/pkg/domain"
	"feed-reporter/pkg/recency"
)

// FeedFetcher retrieves a raw feed document
type FeedFetcher interface {
	Fetch(url string) (string, error)
}

// FeedParser turns a raw feed document into entries
type FeedParser interface {
	Parse(data string) []domain.Entry
}

// ContentScheduler fetches article content for a list of URLs, returning
// one result per URL in input order.
type ContentScheduler interface {
	FetchAll(ctx context.Context, urls []string) []content.Result
}

// Summarizer produces a per-article summary. Implementations return a
// sentinel failure string rather than an error, so the narrative stage
// always receives a value per entry.
type Summarizer interface {
	Summarize(ctx context.Context, articleContent, sourceURL string) string
}

// Narrator synthesizes a single narrative from the summaries
type Narrator interface {
	Synthesize(ctx context.Context, summaries []string) (string, error)
}

// Processor composes the end-to-end flow: load feed list, fetch and parse
// all feeds concurrently, filter recent entries, fetch missing article
// bodies, summarize, and synthesize the narrative.
type Processor struct {
	fetcher     FeedFetcher
	parser      FeedParser
	scheduler   ContentScheduler
	summarizer  Summarizer
	narrator    Narrator
	feedWorkers int
	maxAge      time.Duration
}

// New creates a processor with the default worker count and recency threshold
func New(fetcher FeedFetcher, parser FeedParser, scheduler ContentScheduler, summarizer Summarizer, narrator Narrator) *Processor {
	return &Processor{
		fetcher:     fetcher,
		parser:      parser,
		scheduler:   scheduler,
		summarizer:  summarizer,
		narrator:    narrator,
		feedWorkers: config.FeedWorkers,
		maxAge:      config.MaxEntryAge,
	}
}

// LoadFeedURLs reads one feed URL per line from the given file. Blank lines
// are ignored. A missing file is non-fatal and yields an empty set.
func LoadFeedURLs(path string) []string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("pipeline: feed list not readable: %v", err)
		return nil
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if url := strings.TrimSpace(scanner.Text()); url != "" {
			urls = append(urls, url)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("pipeline: error reading feed list: %v", err)
	}
	return urls
}

// Run executes one full pipeline pass and returns the enriched entries plus
// the narrative text. When fetchContent is false, entries are returned
// as-is with an empty narrative and no summarization is attempted.
func (p *Processor) Run(ctx context.Context, feedListPath string, fetchContent bool) ([]domain.Entry, string, error) {
	feedURLs := LoadFeedURLs(feedListPath)
	entries := p.fetchAndParseFeeds(ctx, feedURLs)

	// Establish global ordering once, before any content fan-out
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Published > entries[j].Published
	})

	if !fetchContent {
		return entries, "", nil
	}

	entries = p.enrichEntries(ctx, entries)

	summaries := p.summarizeEntries(ctx, entries)
	if len(summaries) == 0 {
		return entries, "", nil
	}

	log.Printf("pipeline: generating final narrative from %d summaries", len(summaries))
	narrative, err := p.narrator.Synthesize(ctx, summaries)
	if err != nil {
		return entries, "", fmt.Errorf("generating narrative: %w", err)
	}

	return entries, narrative, nil
}

// fetchAndParseFeeds fans out one fetch+parse task per feed URL over a
// bounded worker pool, keeping only recent entries. A single feed's failure
// yields zero entries for that feed and never fails the run.
func (p *Processor) fetchAndParseFeeds(ctx context.Context, feedURLs []string) []domain.Entry {
	jobChan := make(chan string, len(feedURLs))
	for _, url := range feedURLs {
		jobChan <- url
	}
	close(jobChan)

	resultsChan := make(chan []domain.Entry, len(feedURLs))

	var wg sync.WaitGroup
	for i := 0; i < p.feedWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case url, ok := <-jobChan:
					if !ok {
						return
					}
					resultsChan <- p.fetchAndParseFeed(url)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var all []domain.Entry
	fetched := 0
	for entries := range resultsChan {
		fetched++
		for _, entry := range entries {
			if recency.IsRecent(entry.Published, p.maxAge) {
				all = append(all, entry)
			}
		}
		log.Printf("pipeline: fetched feed %d/%d", fetched, len(feedURLs))
	}
	return all
}

func (p *Processor) fetchAndParseFeed(url string) []domain.Entry {
	data, err := p.fetcher.Fetch(url)
	if err != nil {
		log.Printf("pipeline: error fetching feed %s: %v", url, err)
		return nil
	}
	return p.parser.Parse(data)
}

// enrichEntries fetches full content for entries that carry no feed-supplied
// content but have a link. Entries whose extraction fails are dropped;
// entries that never needed extraction pass through unchanged.
func (p *Processor) enrichEntries(ctx context.Context, entries []domain.Entry) []domain.Entry {
	var needContent []int
	for i, entry := range entries {
		if entry.Content == "" && entry.Link != "" {
			needContent = append(needContent, i)
		}
	}
	if len(needContent) == 0 {
		return entries
	}

	log.Printf("pipeline: fetching full content for %d articles", len(needContent))

	urls := make([]string, len(needContent))
	for i, idx := range needContent {
		urls[i] = entries[idx].Link
	}
	results := p.scheduler.FetchAll(ctx, urls)

	needed := make(map[int]bool, len(needContent))
	extracted := make(map[int]bool, len(needContent))
	succeeded, failed := 0, 0
	for i, idx := range needContent {
		needed[idx] = true
		if results[i].OK() {
			entries[idx].Content = results[i].Text
			extracted[idx] = true
			succeeded++
		} else {
			failed++
			log.Printf("pipeline: failed to extract %s", entries[idx].Link)
		}
	}

	kept := make([]domain.Entry, 0, len(entries))
	for i, entry := range entries {
		if !needed[i] || extracted[i] {
			kept = append(kept, entry)
		}
	}

	log.Printf("pipeline: content extraction complete: %d succeeded, %d failed", succeeded, failed)
	return kept
}

// summarizeEntries attaches a summary to every entry with content and
// returns the summaries in entry order.
func (p *Processor) summarizeEntries(ctx context.Context, entries []domain.Entry) []string {
	if p.summarizer == nil || p.narrator == nil {
		return nil
	}

	var summaries []string
	for i := range entries {
		if entries[i].Content == "" {
			continue
		}
		summary := p.summarizer.Summarize(ctx, entries[i].Content, entries[i].Link)
		entries[i].Summary = summary
		summaries = append(summaries, summary)
		log.Printf("pipeline: summarized %d articles", len(summaries))
	}
	return summaries
}
