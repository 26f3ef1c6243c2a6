package content

import (
	"strings"
	"testing"
)

func TestCleanDropsNoisePatterns(t *testing.T) {
	text := strings.Join([]string{
		"The new release ships with a faster query planner for analytics.",
		"Subscribe now to get our best stories delivered daily.",
		"Please enable JavaScript to view the full experience here.",
		"Cookie Policy and Privacy Policy apply to this website always.",
		"Contact our newsroom at tips@example.com for more information.",
		"Read the full report at https://example.com/report for details.",
		"Engineers reported a measurable drop in tail latency after the rollout.",
	}, "\n")

	cleaned := Clean(text)

	if !strings.Contains(cleaned, "faster query planner") {
		t.Error("expected real paragraph to survive cleaning")
	}
	if !strings.Contains(cleaned, "tail latency") {
		t.Error("expected second real paragraph to survive cleaning")
	}
	for _, noise := range []string{"Subscribe", "JavaScript", "Cookie", "tips@example.com", "https://"} {
		if strings.Contains(cleaned, noise) {
			t.Errorf("noise %q survived cleaning", noise)
		}
	}
}

func TestCleanDropsShortParagraphs(t *testing.T) {
	cleaned := Clean("Read more\nHome News Sports\nThe committee approved the updated spending plan on Tuesday.")

	if strings.Contains(cleaned, "Read more") {
		t.Error("paragraph under 4 words survived cleaning")
	}
	if !strings.Contains(cleaned, "committee approved") {
		t.Error("valid paragraph was dropped")
	}
}

func TestCleanDropsRepetitiveText(t *testing.T) {
	repetitive := "menu menu menu menu menu menu menu menu menu open"

	cleaned := Clean(repetitive + "\nThe council voted to extend the transit pilot through next spring.")

	if strings.Contains(cleaned, "menu") {
		t.Error("low-diversity paragraph survived cleaning")
	}
	if !strings.Contains(cleaned, "transit pilot") {
		t.Error("valid paragraph was dropped")
	}
}

func TestCleanOutputProperties(t *testing.T) {
	text := strings.Join([]string{
		"one two three",
		"word word word word word",
		"The quarterly results beat every published analyst expectation this year.",
		"Advertisement",
		"Researchers described the method as a significant step for the field.",
	}, "\n")

	cleaned := Clean(text)

	for _, paragraph := range strings.Split(cleaned, "\n\n") {
		if paragraph == "" {
			continue
		}
		words := strings.Fields(paragraph)
		if len(words) < 4 {
			t.Errorf("output paragraph %q has fewer than 4 words", paragraph)
		}
		distinct := make(map[string]struct{})
		for _, word := range words {
			distinct[word] = struct{}{}
		}
		if ratio := float64(len(distinct)) / float64(len(words)); ratio < 0.4 {
			t.Errorf("output paragraph %q has lexical diversity %.2f", paragraph, ratio)
		}
	}
}

func TestCleanJoinsWithBlankLines(t *testing.T) {
	cleaned := Clean("The board approved the merger after months of review.\nRegulators are expected to examine the deal closely next quarter.")

	if !strings.Contains(cleaned, "\n\n") {
		t.Errorf("expected paragraphs joined by a blank line, got %q", cleaned)
	}
}
