// Package newsapi wraps the NewsAPI top-headlines endpoint used by the
// headlines feed.
package newsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sujayx07/TruthScope/internal/domain"
)

const headlineLimit = 5

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, client *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
	}
}

type headlinesResponse struct {
	Articles []struct {
		Title  string `json:"title"`
		URL    string `json:"url"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (c *Client) TopHeadlines(ctx context.Context, query, category string) ([]domain.Headline, error) {
	if c.apiKey == "" || strings.HasPrefix(c.apiKey, "YOUR_") {
		return nil, &domain.ConfigurationError{Setting: "NEWS_API_KEY"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, &domain.APIError{Collaborator: "news", Message: "failed to build request", Err: err}
	}
	q := req.URL.Query()
	q.Set("q", query)
	q.Set("category", category)
	q.Set("language", "en")
	q.Set("country", "us")
	q.Set("pageSize", "5")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.APIError{Collaborator: "news", Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.APIError{Collaborator: "news", Status: resp.StatusCode, Message: "unexpected status"}
	}

	var parsed headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &domain.APIError{Collaborator: "news", Message: "invalid response", Err: err}
	}

	articles := parsed.Articles
	if len(articles) > headlineLimit {
		articles = articles[:headlineLimit]
	}

	headlines := make([]domain.Headline, 0, len(articles))
	for _, a := range articles {
		headlines = append(headlines, domain.Headline{
			Title:  a.Title,
			Source: a.Source.Name,
			URL:    a.URL,
		})
	}
	return headlines, nil
}

var _ domain.NewsClient = (*Client)(nil)
