package domain

// Entry represents one article reference parsed from a feed.
// Link is the stable identifier used to correlate an entry with its
// fetched content across pipeline stages.
type Entry struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Published   string `json:"published"` // raw date string as supplied by the feed
	Source      string `json:"source"`    // feed title
	Content     string `json:"content"`
	Summary     string `json:"summary,omitempty"`
}
