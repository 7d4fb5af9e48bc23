package model

// SearchResult holds product links extracted from a search page. When Links
// is empty the result is a fallback notice: callers must render SearchURL as
// an illustrative placeholder, clearly distinct from a genuine result list.
type SearchResult struct {
	Term      string
	Links     []string
	SearchURL string
}

// Fallback reports whether no links could be extracted for the term.
func (r SearchResult) Fallback() bool {
	return len(r.Links) == 0
}
