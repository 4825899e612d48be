package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sujayx07/TruthScope/internal/domain"
)

// AnalysisResultRepository persists verdicts keyed by the exact URL string.
type AnalysisResultRepository struct {
	db *pgxpool.Pool
}

func NewAnalysisResultRepository(db *pgxpool.Pool) *AnalysisResultRepository {
	return &AnalysisResultRepository{db: db}
}

func (r *AnalysisResultRepository) Upsert(ctx context.Context, url string, verdict *domain.Verdict) error {
	payload, err := json.Marshal(verdict)
	if err != nil {
		return &domain.DatabaseError{Op: "analysis result upsert", Err: fmt.Errorf("failed to serialize verdict: %w", err)}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO analysis_results (url, result_json, timestamp)
		VALUES ($1, $2, now())
		ON CONFLICT (url) DO UPDATE SET
			result_json = EXCLUDED.result_json,
			timestamp = now()
	`, url, payload)
	if err != nil {
		return &domain.DatabaseError{Op: "analysis result upsert", Err: err}
	}
	return nil
}

func (r *AnalysisResultRepository) Get(ctx context.Context, url string) (*domain.Verdict, time.Time, error) {
	var payload []byte
	var writtenAt time.Time
	err := r.db.QueryRow(ctx,
		`SELECT result_json, timestamp FROM analysis_results WHERE url = $1`, url,
	).Scan(&payload, &writtenAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, time.Time{}, domain.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, time.Time{}, &domain.DatabaseError{Op: "analysis result get", Err: err}
	}

	var verdict domain.Verdict
	if err := json.Unmarshal(payload, &verdict); err != nil {
		return nil, time.Time{}, &domain.DatabaseError{Op: "analysis result get", Err: fmt.Errorf("failed to decode stored verdict: %w", err)}
	}
	return &verdict, writtenAt, nil
}

var _ domain.AnalysisResultRepository = (*AnalysisResultRepository)(nil)
