package domain

import "context"

// Headline is one top-headlines entry from the news provider.
type Headline struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// NewsClient wraps the external top-headlines API.
type NewsClient interface {
	TopHeadlines(ctx context.Context, query, category string) ([]Headline, error)
}
