package feed

import (
	"time"

	"github.com/mmcdole/gofeed"

	"feed-reporter/pkg/domain"
	"feed-reporter/pkg/recency"
)

// Parser handles RSS/Atom feed parsing operations
type Parser struct {
	feedParser *gofeed.Parser
}

// NewParser creates a new feed parser
func NewParser() *Parser {
	return &Parser{
		feedParser: gofeed.NewParser(),
	}
}

// Parse turns a raw feed document into normalized entries. Malformed
// documents yield an empty sequence rather than an error. Missing published
// dates default to the current time so unparsable-date entries are treated
// as recent instead of silently dropped.
func (p *Parser) Parse(data string) []domain.Entry {
	parsed, err := p.feedParser.ParseString(data)
	if err != nil || parsed == nil {
		return []domain.Entry{}
	}

	entries := make([]domain.Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		published := item.Published
		if published == "" {
			published = time.Now().UTC().Format(recency.ISOLayout)
		}

		entries = append(entries, domain.Entry{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Published:   published,
			Source:      parsed.Title,
			Content:     item.Content,
		})
	}

	return entries
}
