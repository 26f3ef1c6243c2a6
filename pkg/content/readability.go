package content

import (
	"fmt"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// ReadabilityExtractor implements Extractor using the readability algorithm
// instead of the selector table. Useful for pages whose markup defeats the
// structural heuristics.
type ReadabilityExtractor struct{}

// NewReadabilityExtractor creates a readability-based extractor
func NewReadabilityExtractor() *ReadabilityExtractor {
	return &ReadabilityExtractor{}
}

// ExtractText extracts the main article text from HTML content
func (e *ReadabilityExtractor) ExtractText(htmlContent string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no readable content found")
	}
	return text, nil
}
