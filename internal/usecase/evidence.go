package usecase

import (
	"context"
	"log/slog"

	"github.com/sujayx07/TruthScope/internal/domain"
)

// EvidencePort is the aggregator's view of the three evidence collaborators.
type EvidencePort interface {
	// LookupDomain resolves the reputation verdict for an article URL.
	// Returns DomainVerdictInvalidURL for URLs with no parseable hostname and
	// a *DatabaseError when the store cannot be queried.
	LookupDomain(ctx context.Context, url string) (domain.DomainVerdict, error)
	SearchNews(ctx context.Context, query string) ([]domain.SearchResult, error)
	CheckClaims(ctx context.Context, claims []string) ([]domain.FactCheckRecord, error)
}

type evidenceService struct {
	verdicts  domain.DomainVerdictRepository
	search    domain.SearchClient
	factCheck domain.FactCheckClient
	logger    *slog.Logger
}

// NewEvidenceService builds the EvidencePort over the reputation repository
// and the two external clients.
func NewEvidenceService(
	verdicts domain.DomainVerdictRepository,
	search domain.SearchClient,
	factCheck domain.FactCheckClient,
	logger *slog.Logger,
) EvidencePort {
	return &evidenceService{
		verdicts:  verdicts,
		search:    search,
		factCheck: factCheck,
		logger:    logger,
	}
}

func (s *evidenceService) LookupDomain(ctx context.Context, url string) (domain.DomainVerdict, error) {
	dom, ok := domain.ExtractDomain(url)
	if !ok {
		s.logger.Warn("could not extract domain from url", "url", url)
		return domain.DomainVerdictInvalidURL, nil
	}

	verdict, err := s.verdicts.Lookup(ctx, dom)
	if err != nil {
		return "", err
	}
	s.logger.Info("domain verdict lookup", "domain", dom, "verdict", string(verdict))
	return verdict, nil
}

func (s *evidenceService) SearchNews(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return s.search.Search(ctx, query)
}

func (s *evidenceService) CheckClaims(ctx context.Context, claims []string) ([]domain.FactCheckRecord, error) {
	return s.factCheck.CheckClaims(ctx, claims)
}
