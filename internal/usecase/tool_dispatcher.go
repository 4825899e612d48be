package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sujayx07/TruthScope/internal/domain"
)

// toolDispatcher executes the model's function-call requests against the
// EvidencePort for a single analysis. The domain verdict is resolved once by
// the usecase before the loop starts; the database tool replays that value
// instead of hitting the store again.
//
// Search and fact-check failures are fed back to the model as error payloads
// (the model downgrades them to prose in its reasoning); only a reputation
// store fault aborts the analysis.
type toolDispatcher struct {
	evidence      EvidencePort
	domainVerdict domain.DomainVerdict
	logger        *slog.Logger

	mu     sync.Mutex
	bundle domain.EvidenceBundle
}

func newToolDispatcher(evidence EvidencePort, domainVerdict domain.DomainVerdict, logger *slog.Logger) *toolDispatcher {
	return &toolDispatcher{
		evidence:      evidence,
		domainVerdict: domainVerdict,
		logger:        logger,
		bundle:        domain.EvidenceBundle{DomainVerdict: domainVerdict},
	}
}

// Dispatch runs every call from one model turn. Calls within a turn are
// independent, so they run concurrently; result order matches call order.
func (d *toolDispatcher) Dispatch(ctx context.Context, calls []domain.FunctionCall) ([]domain.FunctionResult, error) {
	results := make([]domain.FunctionResult, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			result, err := d.dispatchOne(gctx, call)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *toolDispatcher) dispatchOne(ctx context.Context, call domain.FunctionCall) (domain.FunctionResult, error) {
	switch call.Name {
	case domain.ToolCheckDatabaseForURL:
		return domain.FunctionResult{
			Name:     call.Name,
			Response: map[string]any{"verdict": string(d.domainVerdict)},
		}, nil

	case domain.ToolSearchGoogleNews:
		query, _ := call.Args["query"].(string)
		results, err := d.evidence.SearchNews(ctx, query)
		if err != nil {
			d.recordToolError(fmt.Sprintf("news search failed: %v", err))
			return errorResult(call.Name, err), nil
		}
		d.recordSearchResults(results)
		return domain.FunctionResult{
			Name:     call.Name,
			Response: map[string]any{"results": searchResultsPayload(results)},
		}, nil

	case domain.ToolFactCheckClaims:
		claims := stringSlice(call.Args["claims"])
		records, err := d.evidence.CheckClaims(ctx, claims)
		if err != nil {
			d.recordToolError(fmt.Sprintf("fact check failed: %v", err))
			return errorResult(call.Name, err), nil
		}
		d.recordFactChecks(records)
		return domain.FunctionResult{
			Name:     call.Name,
			Response: map[string]any{"fact_checks": factChecksPayload(records)},
		}, nil

	default:
		d.logger.Warn("model requested unknown tool", "tool", call.Name)
		return domain.FunctionResult{
			Name:     call.Name,
			Response: map[string]any{"error": fmt.Sprintf("unknown tool: %s", call.Name)},
		}, nil
	}
}

// Bundle returns a copy of the evidence gathered so far.
func (d *toolDispatcher) Bundle() domain.EvidenceBundle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bundle
}

func (d *toolDispatcher) recordToolError(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bundle.ToolErrors = append(d.bundle.ToolErrors, msg)
}

func (d *toolDispatcher) recordSearchResults(results []domain.SearchResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bundle.SearchResults = append(d.bundle.SearchResults, results...)
}

func (d *toolDispatcher) recordFactChecks(records []domain.FactCheckRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bundle.FactChecks = append(d.bundle.FactChecks, records...)
}

func errorResult(name string, err error) domain.FunctionResult {
	return domain.FunctionResult{
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

func searchResultsPayload(results []domain.SearchResult) []map[string]any {
	payload := make([]map[string]any, 0, len(results))
	for _, r := range results {
		payload = append(payload, map[string]any{
			"title":   r.Title,
			"link":    r.Link,
			"snippet": r.Snippet,
		})
	}
	return payload
}

func factChecksPayload(records []domain.FactCheckRecord) []map[string]any {
	payload := make([]map[string]any, 0, len(records))
	for _, r := range records {
		payload = append(payload, map[string]any{
			"source":        r.Source,
			"title":         r.Title,
			"url":           r.URL,
			"claim":         r.Claim,
			"review_rating": r.ReviewRating,
		})
	}
	return payload
}

func stringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	claims := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			claims = append(claims, s)
		}
	}
	return claims
}
