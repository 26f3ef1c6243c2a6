package recency

import (
	"time"

	"github.com/araddon/dateparse"
)

// ISOLayout is the ISO-8601-with-microseconds layout tried before falling
// back to permissive feed-date parsing.
const ISOLayout = "2006-01-02T15:04:05.000000"

// IsRecent reports whether a raw published date falls within maxAge of now.
// Parsing is fail-open: an unparsable date never discards an entry. Entries
// dated in the future also count as recent.
func IsRecent(published string, maxAge time.Duration) bool {
	pub, err := time.Parse(ISOLayout, published)
	if err != nil {
		pub, err = dateparse.ParseAny(published)
		if err != nil {
			return true
		}
	}

	return time.Since(pub) <= maxAge
}
