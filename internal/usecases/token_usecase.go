package usecases

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"passlink.backend/internal/domain/entities"
	domainerrors "passlink.backend/internal/domain/errors"
	"passlink.backend/internal/domain/repositories"
	"passlink.backend/pkg/crypto"
	"passlink.backend/pkg/logger"
	"passlink.backend/pkg/metrics"
)

// TokenUsecase handles the one-time login token lifecycle
type TokenUsecase struct {
	tokenRepo     repositories.LoginTokenRepository
	redeemBaseURL string
	tokenTTL      time.Duration
	retention     time.Duration
}

// NewTokenUsecase creates a new token usecase
func NewTokenUsecase(tokenRepo repositories.LoginTokenRepository, redeemBaseURL string, tokenTTL, retention time.Duration) *TokenUsecase {
	return &TokenUsecase{
		tokenRepo:     tokenRepo,
		redeemBaseURL: redeemBaseURL,
		tokenTTL:      tokenTTL,
		retention:     retention,
	}
}

// Issue generates a fresh one-time token for the identity and returns it
// together with the redeem URL it is embedded in. Prior tokens for the same
// identity stay live unless the caller asked for invalidation first.
func (u *TokenUsecase) Issue(ctx context.Context, input *entities.IssueTokenInput) (*entities.IssuedToken, error) {
	if input.InvalidatePrior {
		if _, err := u.Invalidate(ctx, input.Email); err != nil {
			return nil, err
		}
	}

	token, err := crypto.GenerateLoginToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entities.LoginToken{
		ID:                uuid.New(),
		Token:             token,
		Email:             input.Email,
		CallbackURL:       input.CallbackURL,
		DeviceBindingHash: input.DeviceBindingHash,
		IssuedAt:          now,
		ExpiresAt:         now.Add(u.tokenTTL),
	}
	if err := u.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	metrics.TokensIssued.Inc()
	logger.Info(ctx, "login token issued", zap.String("email", input.Email))

	return &entities.IssuedToken{
		Token:     token,
		RedeemURL: u.buildRedeemURL(token),
	}, nil
}

// Invalidate removes all live tokens for the identity so stale links go
// dead. Returns the number of tokens removed.
func (u *TokenUsecase) Invalidate(ctx context.Context, email string) (int64, error) {
	n, err := u.tokenRepo.DeleteByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.TokensInvalidated.Add(float64(n))
		logger.Info(ctx, "login tokens invalidated", zap.String("email", email), zap.Int64("count", n))
	}
	return n, nil
}

// ValidateAndConsume redeems a token exactly once. Absence, expiry, a
// device-binding mismatch, and a lost consumption race all surface as
// ErrNotFound so the caller cannot tell the cases apart. The conditional
// update inside Consume is the true arbiter of who won; the initial lookup
// is only a fast-path existence and binding check.
func (u *TokenUsecase) ValidateAndConsume(ctx context.Context, token, deviceBindingHash string) (*entities.LoginToken, error) {
	record, err := u.tokenRepo.GetUnconsumed(ctx, token)
	if err != nil {
		return nil, err
	}
	if record.IsExpired() {
		return nil, domainerrors.ErrNotFound
	}
	if record.DeviceBindingHash != "" && deviceBindingHash != "" && record.DeviceBindingHash != deviceBindingHash {
		return nil, domainerrors.ErrNotFound
	}

	consumedAt := time.Now()
	if err := u.tokenRepo.Consume(ctx, token, consumedAt); err != nil {
		// ErrNotFound here means a concurrent consumer won the race.
		return nil, err
	}

	record.ConsumedAt.SetValid(consumedAt)
	metrics.TokensConsumed.Inc()
	logger.Info(ctx, "login token consumed", zap.String("email", record.Email))
	return record, nil
}

// HasValidToken reports whether any unconsumed, unexpired token exists for
// the identity
func (u *TokenUsecase) HasValidToken(ctx context.Context, email string) (bool, error) {
	return u.tokenRepo.HasUnconsumed(ctx, email, time.Now())
}

// HasRecentlyConsumedToken reports whether a token for the identity was
// consumed within the window. Used to grant time-boxed elevated trust to
// whoever most recently redeemed a token.
func (u *TokenUsecase) HasRecentlyConsumedToken(ctx context.Context, email string, window time.Duration) (bool, error) {
	return u.tokenRepo.HasConsumedSince(ctx, email, time.Now().Add(-window))
}

// CleanupExpired deletes tokens past the retention window and returns the
// count removed. Safe to run concurrently with consumption: the predicate
// only matches rows already past retention.
func (u *TokenUsecase) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := u.tokenRepo.DeleteOlderThan(ctx, time.Now().Add(-u.retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.TokensReaped.WithLabelValues("login_tokens").Add(float64(n))
	}
	return n, nil
}

func (u *TokenUsecase) buildRedeemURL(token string) string {
	return u.redeemBaseURL + "?token=" + url.QueryEscape(token)
}

// IsNotFound reports whether err is the expected "token invalid" outcome as
// opposed to a storage failure
func IsNotFound(err error) bool {
	return errors.Is(err, domainerrors.ErrNotFound)
}
