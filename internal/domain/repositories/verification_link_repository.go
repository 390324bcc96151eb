package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"passlink.backend/internal/domain/entities"
)

// VerificationLinkRepository defines correlation-record data operations.
// Put is an upsert: the latest write for a correlation id wins, so the
// issuer may be invoked more than once for the same id without creating
// duplicates.
type VerificationLinkRepository interface {
	Put(ctx context.Context, link *entities.VerificationLink) error
	GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*entities.VerificationLink, error)
	// GetWithRetry polls GetByCorrelationID up to maxAttempts times, waiting
	// interval between misses (the first attempt is immediate). A present but
	// expired record returns ErrLinkExpired without further retries; attempt
	// exhaustion returns ErrLinkTimeout.
	GetWithRetry(ctx context.Context, correlationID uuid.UUID, maxAttempts int, interval time.Duration) (*entities.VerificationLink, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
