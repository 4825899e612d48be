// Package factcheck wraps the Google Fact Check Tools claims:search API.
package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sujayx07/TruthScope/internal/domain"
)

const (
	claimLimit     = 3
	querySizeLimit = 500
)

// GoogleClient checks claims one request at a time. A per-claim failure is
// recorded and the batch continues; any recorded failure turns the whole call
// into a single APIError so the caller sees "partial" as "failed" instead of
// a silently short list.
type GoogleClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewGoogleClient(baseURL, apiKey string, client *http.Client, logger *slog.Logger) *GoogleClient {
	return &GoogleClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

type claimsResponse struct {
	Claims []claimEntry `json:"claims"`
}

type claimEntry struct {
	Text        string        `json:"text"`
	ClaimReview []claimReview `json:"claimReview"`
}

type claimReview struct {
	Publisher struct {
		Name string `json:"name"`
	} `json:"publisher"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	TextualRating string `json:"textualRating"`
}

func (c *GoogleClient) CheckClaims(ctx context.Context, claims []string) ([]domain.FactCheckRecord, error) {
	if c.apiKey == "" || strings.HasPrefix(c.apiKey, "YOUR_") {
		return nil, &domain.ConfigurationError{Setting: "GOOGLE_FACT_CHECK_API_KEY"}
	}
	if len(claims) == 0 {
		return []domain.FactCheckRecord{}, nil
	}

	toCheck := claims
	if len(toCheck) > claimLimit {
		toCheck = toCheck[:claimLimit]
	}

	var records []domain.FactCheckRecord
	var failures []string

	for _, claim := range toCheck {
		truncated := truncate(claim, querySizeLimit)
		record, err := c.checkOne(ctx, truncated, claim)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		if record != nil {
			records = append(records, *record)
		}
	}

	if len(failures) > 0 {
		return nil, &domain.APIError{
			Collaborator: "fact-check",
			Message:      fmt.Sprintf("fact check encountered errors: %s", strings.Join(failures, "; ")),
		}
	}

	c.logger.Info("fact check completed", "claims", len(toCheck), "records", len(records))
	if records == nil {
		records = []domain.FactCheckRecord{}
	}
	return records, nil
}

// checkOne issues a single claims:search request and maps the first review of
// the first matching claim, or nil when the provider has nothing.
func (c *GoogleClient) checkOne(ctx context.Context, query, original string) (*domain.FactCheckRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	q := req.URL.Query()
	q.Set("query", query)
	q.Set("pageSize", "1")
	q.Set("languageCode", "en")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed for claim %q: %w", truncate(query, 80), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for claim %q", resp.StatusCode, truncate(query, 80))
	}

	var parsed claimsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("invalid response for claim %q: %w", truncate(query, 80), err)
	}

	if len(parsed.Claims) == 0 || len(parsed.Claims[0].ClaimReview) == 0 {
		return nil, nil
	}

	entry := parsed.Claims[0]
	review := entry.ClaimReview[0]

	record := domain.FactCheckRecord{
		Source:       defaultString(review.Publisher.Name, "Unknown Source"),
		Title:        defaultString(review.Title, defaultString(entry.Text, "N/A")),
		URL:          defaultString(review.URL, "#"),
		Claim:        defaultString(entry.Text, original),
		ReviewRating: defaultString(review.TextualRating, "N/A"),
	}
	return &record, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var _ domain.FactCheckClient = (*GoogleClient)(nil)
