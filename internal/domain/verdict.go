package domain

// Labels emitted by the classifier prompt.
const (
	LabelCredible   = "LABEL_0"
	LabelMisleading = "LABEL_1"
)

// Verdict is the final structured credibility assessment for one article.
// All fields are always present in serialized form, even when empty.
type Verdict struct {
	Label      string     `json:"label"`
	Score      float64    `json:"score"`
	Highlights []string   `json:"highlights"`
	Reasoning  []string   `json:"reasoning"`
	FactCheck  []Citation `json:"fact_check"`
}

// Citation is one supporting reference in a verdict, merged from either the
// fact-check tool or the news-search tool.
type Citation struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Claim  string `json:"claim"`
}

// InvalidURLVerdict is the fixed output for URLs with no parseable hostname.
func InvalidURLVerdict() *Verdict {
	return &Verdict{
		Label:      LabelMisleading,
		Score:      0.0,
		Highlights: []string{},
		Reasoning:  []string{"The provided URL was invalid or could not be processed."},
		FactCheck:  []Citation{},
	}
}

// OutOfScopeVerdict is the fixed output for domains that are not news sources.
func OutOfScopeVerdict() *Verdict {
	return &Verdict{
		Label:      LabelCredible,
		Score:      0.5,
		Highlights: []string{},
		Reasoning:  []string{"The domain does not appear to be a news source and is considered out of scope."},
		FactCheck:  []Citation{},
	}
}
