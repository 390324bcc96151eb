package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"passlink.backend/internal/domain/entities"
	domainerrors "passlink.backend/internal/domain/errors"
	"passlink.backend/internal/infrastructure/models"
)

// VerificationLinkRepository implements correlation-record data operations
type VerificationLinkRepository struct {
	db *gorm.DB
}

// NewVerificationLinkRepository creates a new verification link repository
func NewVerificationLinkRepository(db *gorm.DB) *VerificationLinkRepository {
	return &VerificationLinkRepository{db: db}
}

// Put upserts the record for a correlation id; the latest write wins
func (r *VerificationLinkRepository) Put(ctx context.Context, link *entities.VerificationLink) error {
	m := &models.VerificationLink{
		CorrelationID: link.CorrelationID,
		Email:         link.Email,
		ArtifactURL:   link.ArtifactURL,
		ExpiresAt:     link.ExpiresAt,
		CreatedAt:     link.CreatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "correlation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "artifact_url", "expires_at", "created_at"}),
		}).
		Create(m).Error
}

// GetByCorrelationID gets the record for a correlation id
func (r *VerificationLinkRepository) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*entities.VerificationLink, error) {
	var m models.VerificationLink
	err := r.db.WithContext(ctx).
		Where("correlation_id = ?", correlationID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.VerificationLink{
		CorrelationID: m.CorrelationID,
		Email:         m.Email,
		ArtifactURL:   m.ArtifactURL,
		ExpiresAt:     m.ExpiresAt,
		CreatedAt:     m.CreatedAt,
	}, nil
}

// GetWithRetry polls for the record until it appears, expires, or the
// attempt budget runs out. The wait between attempts suspends only this
// request; an expired hit is terminal because a record past its expiry will
// never become valid by waiting longer.
func (r *VerificationLinkRepository) GetWithRetry(ctx context.Context, correlationID uuid.UUID, maxAttempts int, interval time.Duration) (*entities.VerificationLink, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}
		}

		link, err := r.GetByCorrelationID(ctx, correlationID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if link.IsExpired() {
			return nil, domainerrors.ErrLinkExpired
		}
		return link, nil
	}
	return nil, domainerrors.ErrLinkTimeout
}

// DeleteOlderThan removes records created before the retention cutoff
func (r *VerificationLinkRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.VerificationLink{})
	return result.RowsAffected, result.Error
}
