package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sujayx07/TruthScope/internal/domain"
)

// DomainVerdictRepository reads the curated url_verdicts table.
type DomainVerdictRepository struct {
	db *pgxpool.Pool
}

func NewDomainVerdictRepository(db *pgxpool.Pool) *DomainVerdictRepository {
	return &DomainVerdictRepository{db: db}
}

func (r *DomainVerdictRepository) Lookup(ctx context.Context, dom string) (domain.DomainVerdict, error) {
	var verdict string
	err := r.db.QueryRow(ctx,
		`SELECT verdict FROM url_verdicts WHERE domain = $1`, dom,
	).Scan(&verdict)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DomainVerdictNotFound, nil
	}
	if err != nil {
		return "", &domain.DatabaseError{Op: "domain verdict lookup", Err: err}
	}

	switch domain.DomainVerdict(verdict) {
	case domain.DomainVerdictReal, domain.DomainVerdictFake:
		return domain.DomainVerdict(verdict), nil
	default:
		// A row with an unexpected verdict is treated the same as no row.
		return domain.DomainVerdictNotFound, nil
	}
}

func (r *DomainVerdictRepository) Upsert(ctx context.Context, dom string, verdict domain.DomainVerdict) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO url_verdicts (domain, verdict)
		VALUES ($1, $2)
		ON CONFLICT (domain) DO UPDATE SET verdict = EXCLUDED.verdict
	`, dom, string(verdict))
	if err != nil {
		return &domain.DatabaseError{Op: "domain verdict upsert", Err: err}
	}
	return nil
}

var _ domain.DomainVerdictRepository = (*DomainVerdictRepository)(nil)
