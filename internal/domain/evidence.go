package domain

// DomainVerdict is the outcome of a domain-reputation lookup.
type DomainVerdict string

const (
	DomainVerdictReal       DomainVerdict = "real"
	DomainVerdictFake       DomainVerdict = "fake"
	DomainVerdictNotFound   DomainVerdict = "not_found"
	DomainVerdictInvalidURL DomainVerdict = "invalid_url"
)

// SearchResult is one candidate corroborating article from the news-search
// collaborator. Fields are never empty; providers that omit a field get the
// documented placeholder instead.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// FactCheckRecord is the best-matching review for a single claim. At most one
// record is produced per checked claim (first claim's first review).
type FactCheckRecord struct {
	Source       string `json:"source"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Claim        string `json:"claim"`
	ReviewRating string `json:"review_rating"`
}

// EvidenceBundle collects everything gathered for one article before the
// verdict is synthesized. ToolErrors being non-empty means at least one
// collaborator could not be queried; the other fields may still be populated.
type EvidenceBundle struct {
	DomainVerdict DomainVerdict
	SearchResults []SearchResult
	FactChecks    []FactCheckRecord
	ToolErrors    []string
}
