package content

// Outcome classifies the result of one extraction attempt, keeping "no
// content found" distinguishable from "fetch never succeeded".
type Outcome int

const (
	// OutcomeOK means cleaned content was extracted.
	OutcomeOK Outcome = iota

	// OutcomeFetchFailed means the request errored or timed out.
	OutcomeFetchFailed

	// OutcomeBadStatus means the server answered with a non-200 status.
	OutcomeBadStatus

	// OutcomeNoContent means no block passed the extraction heuristics.
	OutcomeNoContent

	// OutcomeTooShort means the cleaned text fell below the minimum word count.
	OutcomeTooShort
)

// Result is the outcome of extracting one article URL.
type Result struct {
	URL        string
	Text       string // cleaned content, empty unless OK
	Outcome    Outcome
	StatusCode int // set for OutcomeBadStatus
	Err        error
}

// OK reports whether the extraction produced usable content
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}
