package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/sujayx07/TruthScope/internal/domain"
)

// CachedDomainVerdictRepository fronts a verdict repository with an in-process
// expirable LRU. The underlying table is read-mostly reference data, so a
// short TTL is enough to keep repeated lookups of popular domains off the
// pool. Errors are never cached.
type CachedDomainVerdictRepository struct {
	inner domain.DomainVerdictRepository
	cache *expirable.LRU[string, domain.DomainVerdict]
}

func NewCachedDomainVerdictRepository(inner domain.DomainVerdictRepository, size int, ttl time.Duration) *CachedDomainVerdictRepository {
	return &CachedDomainVerdictRepository{
		inner: inner,
		cache: expirable.NewLRU[string, domain.DomainVerdict](size, nil, ttl),
	}
}

func (r *CachedDomainVerdictRepository) Lookup(ctx context.Context, dom string) (domain.DomainVerdict, error) {
	if verdict, ok := r.cache.Get(dom); ok {
		return verdict, nil
	}
	verdict, err := r.inner.Lookup(ctx, dom)
	if err != nil {
		return "", err
	}
	r.cache.Add(dom, verdict)
	return verdict, nil
}

func (r *CachedDomainVerdictRepository) Upsert(ctx context.Context, dom string, verdict domain.DomainVerdict) error {
	if err := r.inner.Upsert(ctx, dom, verdict); err != nil {
		return err
	}
	r.cache.Remove(dom)
	return nil
}

var _ domain.DomainVerdictRepository = (*CachedDomainVerdictRepository)(nil)
