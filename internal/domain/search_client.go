package domain

import "context"

// SearchClient wraps the external search-engine proxy. Search returns at most
// five results; failures are *APIError, a missing credential is
// *ConfigurationError raised before any network call.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// FactCheckClient wraps the external claim-review aggregation API. CheckClaims
// caps the input to three claims and returns at most one record per claim. A
// per-claim failure does not abort the batch, but any failure at all turns the
// whole call into a single *APIError.
type FactCheckClient interface {
	CheckClaims(ctx context.Context, claims []string) ([]FactCheckRecord, error)
}
