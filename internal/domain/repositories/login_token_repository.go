package repositories

import (
	"context"
	"time"

	"passlink.backend/internal/domain/entities"
)

// LoginTokenRepository defines one-time login token data operations
type LoginTokenRepository interface {
	Create(ctx context.Context, token *entities.LoginToken) error
	GetUnconsumed(ctx context.Context, token string) (*entities.LoginToken, error)
	// Consume sets consumed_at on the token iff it is still unconsumed.
	// Returns ErrNotFound when the conditional update affects zero rows,
	// which is how a lost race surfaces.
	Consume(ctx context.Context, token string, consumedAt time.Time) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	HasUnconsumed(ctx context.Context, email string, now time.Time) (bool, error)
	HasConsumedSince(ctx context.Context, email string, since time.Time) (bool, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
