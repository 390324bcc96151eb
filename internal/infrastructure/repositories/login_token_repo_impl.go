package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"passlink.backend/internal/domain/entities"
	domainerrors "passlink.backend/internal/domain/errors"
	"passlink.backend/internal/infrastructure/models"
)

// LoginTokenRepository implements one-time login token data operations
type LoginTokenRepository struct {
	db *gorm.DB
}

// NewLoginTokenRepository creates a new login token repository
func NewLoginTokenRepository(db *gorm.DB) *LoginTokenRepository {
	return &LoginTokenRepository{db: db}
}

// Create inserts a new unconsumed token
func (r *LoginTokenRepository) Create(ctx context.Context, token *entities.LoginToken) error {
	m := &models.LoginToken{
		ID:                token.ID,
		Token:             token.Token,
		Email:             token.Email,
		CallbackURL:       token.CallbackURL,
		DeviceBindingHash: token.DeviceBindingHash,
		IssuedAt:          token.IssuedAt,
		ExpiresAt:         token.ExpiresAt,
		CreatedAt:         token.IssuedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetUnconsumed gets an unconsumed token by its value
func (r *LoginTokenRepository) GetUnconsumed(ctx context.Context, token string) (*entities.LoginToken, error) {
	var m models.LoginToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND consumed_at IS NULL", token).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Consume marks a token consumed iff it is still unconsumed. The conditional
// update is the source of truth for who won a concurrent redemption race:
// zero rows affected means some other consumer got there first.
func (r *LoginTokenRepository) Consume(ctx context.Context, token string, consumedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.LoginToken{}).
		Where("token = ? AND consumed_at IS NULL", token).
		Update("consumed_at", consumedAt)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByEmail hard-deletes all tokens for an email so stale links go dead.
// Returns the number of tokens removed.
func (r *LoginTokenRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&models.LoginToken{})
	return result.RowsAffected, result.Error
}

// HasUnconsumed reports whether any live token exists for the email
func (r *LoginTokenRepository) HasUnconsumed(ctx context.Context, email string, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoginToken{}).
		Where("email = ? AND consumed_at IS NULL AND expires_at > ?", email, now).
		Count(&count).Error
	return count > 0, err
}

// HasConsumedSince reports whether a token for the email was consumed after
// the given instant
func (r *LoginTokenRepository) HasConsumedSince(ctx context.Context, email string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoginToken{}).
		Where("email = ? AND consumed_at IS NOT NULL AND consumed_at > ?", email, since).
		Count(&count).Error
	return count > 0, err
}

// DeleteOlderThan removes tokens issued before the retention cutoff. The
// predicate only matches rows already past retention, so a token mid
// consumption is never touched.
func (r *LoginTokenRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("issued_at < ?", cutoff).
		Delete(&models.LoginToken{})
	return result.RowsAffected, result.Error
}

func (r *LoginTokenRepository) toEntity(m *models.LoginToken) *entities.LoginToken {
	return &entities.LoginToken{
		ID:                m.ID,
		Token:             m.Token,
		Email:             m.Email,
		CallbackURL:       m.CallbackURL,
		DeviceBindingHash: m.DeviceBindingHash,
		IssuedAt:          m.IssuedAt,
		ExpiresAt:         m.ExpiresAt,
		ConsumedAt:        null.TimeFromPtr(m.ConsumedAt),
	}
}
