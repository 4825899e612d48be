package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tiers a caller can be on. Populated out-of-band; new callers start on free.
const (
	TierFree = "free"
	TierPro  = "pro"
)

// User identifies a caller of the analysis API.
type User struct {
	ID        uuid.UUID
	SubjectID string // external identity provider subject ("sub")
	Tier      string
	CreatedAt time.Time
}
