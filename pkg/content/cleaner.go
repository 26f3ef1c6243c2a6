package content

import (
	"regexp"
	"strings"
)

// noisePatterns match boilerplate paragraphs: cookie and privacy notices,
// subscribe/login prompts, share/follow prompts, bare emails and URLs.
var noisePatterns = []string{
	`JavaScript must be enabled`,
	`Please enable JavaScript`,
	`Subscribe to read more`,
	`Subscribe now`,
	`Sign (up|in)`,
	`Log in`,
	`Cookie Policy`,
	`Privacy Policy`,
	`Advertisement`,
	`Related Articles`,
	`Share this article`,
	`Follow us on`,
	`\S+@\S+\.\S+`,
	`https?://\S+`,
}

var noiseRegexp = regexp.MustCompile(`(?i)` + strings.Join(noisePatterns, "|"))

// minParagraphWords is the minimum word count for a paragraph to survive cleaning.
const minParagraphWords = 4

// minLexicalDiversity is the minimum ratio of distinct words to total words;
// repetitive filler and navigation text falls below it.
const minLexicalDiversity = 0.4

// Clean splits raw extracted text into line-delimited paragraphs, drops
// boilerplate and low-quality paragraphs, and rejoins the survivors with a
// blank line between them.
func Clean(text string) string {
	var kept []string

	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) < minParagraphWords {
			continue
		}
		if noiseRegexp.MatchString(paragraph) {
			continue
		}

		distinct := make(map[string]struct{}, len(words))
		for _, word := range words {
			distinct[word] = struct{}{}
		}
		if float64(len(distinct))/float64(len(words)) < minLexicalDiversity {
			continue
		}

		kept = append(kept, strings.TrimSpace(paragraph))
	}

	return strings.Join(kept, "\n\n")
}
