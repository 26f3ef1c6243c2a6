package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"feed-reporter/pkg/config"
)

// Extractor defines an interface for recovering the main article text from
// an HTML document.
type Extractor interface {
	ExtractText(htmlContent string) (string, error)
}

// SelectorRule pairs a structural selector with the minimum text length a
// match must yield before it is accepted.
type SelectorRule struct {
	Selector string
	MinSize  int
}

// DefaultRules returns the ordered selector table tried before the
// largest-block fallback: semantic article containers first, then common
// CMS content-container patterns.
func DefaultRules() []SelectorRule {
	return []SelectorRule{
		{Selector: "article", MinSize: config.MinTextBlockSize},
		{Selector: "[role=article]", MinSize: config.MinTextBlockSize},
		{Selector: ".article-content", MinSize: config.MinTextBlockSize},
		{Selector: ".post-content", MinSize: config.MinTextBlockSize},
		{Selector: ".entry-content", MinSize: config.MinTextBlockSize},
		{Selector: ".content-body", MinSize: config.MinTextBlockSize},
		{Selector: "main article", MinSize: config.MinTextBlockSize},
		{Selector: "#article-body", MinSize: config.MinTextBlockSize},
		{Selector: "[itemprop=articleBody]", MinSize: config.MinTextBlockSize},
	}
}

// strippedTags are removed wholesale before any extraction heuristic runs
var strippedTags = []string{
	"script", "style", "noscript", "iframe", "nav",
	"header", "footer", "aside", "form",
}

// noiseClassRegexp matches class attributes of ad, social, comment and
// subscription widgets.
var noiseClassRegexp = regexp.MustCompile(`(?i)(ads?|banner|social|share|comment|newsletter|subscription)`)

// HeuristicExtractor implements Extractor with an ordered selector table
// and a largest-text-block fallback.
type HeuristicExtractor struct {
	rules []SelectorRule
}

// NewHeuristicExtractor creates an extractor with the default selector rules
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{rules: DefaultRules()}
}

// NewHeuristicExtractorWithRules creates an extractor with a custom rule table
func NewHeuristicExtractorWithRules(rules []SelectorRule) *HeuristicExtractor {
	return &HeuristicExtractor{rules: rules}
}

// ExtractText parses the document, strips non-content elements, and returns
// the text of the best-matching content block.
func (e *HeuristicExtractor) ExtractText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	stripNoise(doc)

	block := e.mainBlock(doc)
	if block == nil {
		return "", fmt.Errorf("no main content block found")
	}

	return blockText(block), nil
}

// stripNoise removes scripts, navigation, forms and elements whose class
// attribute matches a noise pattern.
func stripNoise(doc *goquery.Document) {
	doc.Find(strings.Join(strippedTags, ",")).Remove()

	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if noiseClassRegexp.MatchString(class) {
			s.Remove()
		}
	})
}

// mainBlock tries the selector rules in priority order, then falls back to
// the single paragraph/div with the largest text length above the threshold.
func (e *HeuristicExtractor) mainBlock(doc *goquery.Document) *goquery.Selection {
	for _, rule := range e.rules {
		selection := doc.Find(rule.Selector).First()
		if selection.Length() > 0 && textLength(selection) > rule.MinSize {
			return selection
		}
	}

	var best *goquery.Selection
	bestLength := 0
	doc.Find("p,div").Each(func(_ int, s *goquery.Selection) {
		if length := textLength(s); length > config.MinTextBlockSize && length > bestLength {
			best = s
			bestLength = length
		}
	})

	return best
}

func textLength(s *goquery.Selection) int {
	return len(strings.TrimSpace(s.Text()))
}

// blockText renders a selection as newline-separated text segments so the
// cleaner can treat each text node as a paragraph.
func blockText(s *goquery.Selection) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, node := range s.Nodes {
		walk(node)
	}

	return strings.Join(parts, "\n")
}
