package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujayx07/TruthScope/internal/domain"
)

type stubVerdictRepo struct {
	verdicts map[string]domain.DomainVerdict
	err      error

	lookupCalls int
	upsertCalls int
}

func (s *stubVerdictRepo) Lookup(_ context.Context, dom string) (domain.DomainVerdict, error) {
	s.lookupCalls++
	if s.err != nil {
		return "", s.err
	}
	if verdict, ok := s.verdicts[dom]; ok {
		return verdict, nil
	}
	return domain.DomainVerdictNotFound, nil
}

func (s *stubVerdictRepo) Upsert(_ context.Context, dom string, verdict domain.DomainVerdict) error {
	s.upsertCalls++
	if s.err != nil {
		return s.err
	}
	s.verdicts[dom] = verdict
	return nil
}

func TestCachedDomainVerdictRepository_CachesLookups(t *testing.T) {
	inner := &stubVerdictRepo{verdicts: map[string]domain.DomainVerdict{"cnn.com": domain.DomainVerdictReal}}
	repo := NewCachedDomainVerdictRepository(inner, 8, time.Minute)

	for i := 0; i < 3; i++ {
		verdict, err := repo.Lookup(context.Background(), "cnn.com")
		require.NoError(t, err)
		assert.Equal(t, domain.DomainVerdictReal, verdict)
	}
	assert.Equal(t, 1, inner.lookupCalls)
}

func TestCachedDomainVerdictRepository_CachesNotFound(t *testing.T) {
	inner := &stubVerdictRepo{verdicts: map[string]domain.DomainVerdict{}}
	repo := NewCachedDomainVerdictRepository(inner, 8, time.Minute)

	for i := 0; i < 2; i++ {
		verdict, err := repo.Lookup(context.Background(), "unknown.com")
		require.NoError(t, err)
		assert.Equal(t, domain.DomainVerdictNotFound, verdict)
	}
	assert.Equal(t, 1, inner.lookupCalls)
}

func TestCachedDomainVerdictRepository_NeverCachesErrors(t *testing.T) {
	inner := &stubVerdictRepo{err: &domain.DatabaseError{Op: "lookup", Err: errors.New("down")}}
	repo := NewCachedDomainVerdictRepository(inner, 8, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := repo.Lookup(context.Background(), "cnn.com")
		require.Error(t, err)
	}
	assert.Equal(t, 2, inner.lookupCalls)

	// Once the store recovers the verdict flows through and gets cached.
	inner.err = nil
	inner.verdicts = map[string]domain.DomainVerdict{"cnn.com": domain.DomainVerdictFake}

	verdict, err := repo.Lookup(context.Background(), "cnn.com")
	require.NoError(t, err)
	assert.Equal(t, domain.DomainVerdictFake, verdict)
	assert.Equal(t, 3, inner.lookupCalls)
}

func TestCachedDomainVerdictRepository_UpsertInvalidates(t *testing.T) {
	inner := &stubVerdictRepo{verdicts: map[string]domain.DomainVerdict{"site.com": domain.DomainVerdictReal}}
	repo := NewCachedDomainVerdictRepository(inner, 8, time.Minute)

	_, err := repo.Lookup(context.Background(), "site.com")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(context.Background(), "site.com", domain.DomainVerdictFake))

	verdict, err := repo.Lookup(context.Background(), "site.com")
	require.NoError(t, err)
	assert.Equal(t, domain.DomainVerdictFake, verdict)
	assert.Equal(t, 2, inner.lookupCalls)
}
