// Package search wraps the ZenRows Google-search proxy used to find
// corroborating news coverage for an article.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/sujayx07/TruthScope/internal/domain"
)

const resultLimit = 5

// ZenRowsClient calls the ZenRows SERP endpoint. The query is URL-encoded
// into the path; results are truncated to the first five entries and missing
// fields default instead of failing.
type ZenRowsClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewZenRowsClient(baseURL, apiKey string, client *http.Client, logger *slog.Logger) *ZenRowsClient {
	return &ZenRowsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

type serpResponse struct {
	OrganicResults []serpResult `json:"organic_results"`
}

type serpResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

func (c *ZenRowsClient) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if c.apiKey == "" || strings.HasPrefix(c.apiKey, "YOUR_") {
		return nil, &domain.ConfigurationError{Setting: "ZENROWS_API_KEY"}
	}

	endpoint := c.baseURL + "/" + url.PathEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.APIError{Collaborator: "search", Message: "failed to build request", Err: err}
	}
	q := req.URL.Query()
	q.Set("apikey", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &domain.APIError{Collaborator: "search", Message: "request timed out", Err: err}
		}
		return nil, &domain.APIError{Collaborator: "search", Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.APIError{Collaborator: "search", Status: resp.StatusCode, Message: "unexpected status"}
	}

	var serp serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&serp); err != nil {
		return nil, &domain.APIError{Collaborator: "search", Message: "invalid response", Err: err}
	}

	raw := serp.OrganicResults
	if len(raw) > resultLimit {
		raw = raw[:resultLimit]
	}

	results := make([]domain.SearchResult, 0, len(raw))
	for _, item := range raw {
		results = append(results, domain.SearchResult{
			Title:   defaultString(item.Title, "N/A"),
			Link:    defaultString(item.URL, "#"),
			Snippet: defaultString(item.Description, "N/A"),
		})
	}

	c.logger.Info("news search completed", "query_len", len(query), "results", len(results))
	return results, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var _ domain.SearchClient = (*ZenRowsClient)(nil)
