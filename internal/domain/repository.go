package domain

import (
	"context"
	"time"
)

// DomainVerdictRepository reads the curated domain-reputation data. The data
// is read-only from the service's perspective; Upsert exists for the seeding
// CLI only.
type DomainVerdictRepository interface {
	// Lookup returns the verdict recorded for a normalized domain, or
	// DomainVerdictNotFound when the domain is absent. A storage fault is a
	// *DatabaseError, never a silent not_found.
	Lookup(ctx context.Context, domain string) (DomainVerdict, error)
	Upsert(ctx context.Context, domain string, verdict DomainVerdict) error
}

// AnalysisResultRepository persists finished verdicts keyed by exact URL
// string. Last write wins; there is no TTL or eviction.
type AnalysisResultRepository interface {
	Upsert(ctx context.Context, url string, verdict *Verdict) error
	// Get returns ErrAnalysisNotFound when no result is cached for the URL.
	Get(ctx context.Context, url string) (*Verdict, time.Time, error)
}

// UserRepository resolves external subject IDs to user rows, creating a
// free-tier row on first sight.
type UserRepository interface {
	GetOrCreate(ctx context.Context, subjectID string) (*User, error)
}
