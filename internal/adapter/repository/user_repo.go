package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sujayx07/TruthScope/internal/domain"
)

// ErrEmptySubjectID rejects lookups with no caller identity.
var ErrEmptySubjectID = errors.New("subject id cannot be empty")

// UserRepository resolves callers to user rows, creating free-tier rows on
// first sight. The no-op DO UPDATE on conflict makes the RETURNING clause
// yield the existing row, so concurrent first requests cannot race.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetOrCreate(ctx context.Context, subjectID string) (*domain.User, error) {
	if subjectID == "" {
		return nil, ErrEmptySubjectID
	}

	user := domain.User{SubjectID: subjectID}
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, google_id, tier, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (google_id) DO UPDATE SET google_id = EXCLUDED.google_id
		RETURNING id, tier, created_at
	`, uuid.New(), subjectID, domain.TierFree).Scan(&user.ID, &user.Tier, &user.CreatedAt)
	if err != nil {
		return nil, &domain.DatabaseError{Op: "user get-or-create", Err: err}
	}
	return &user, nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
