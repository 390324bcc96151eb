package entities

import (
	"time"

	"github.com/google/uuid"
)

// VerificationLink is the artifact produced by the credential issuer for one
// exchange attempt, keyed by the correlation id the orchestrator minted.
type VerificationLink struct {
	CorrelationID uuid.UUID `json:"correlationId"`
	Email         string    `json:"email"`
	ArtifactURL   string    `json:"artifactUrl"`
	ExpiresAt     time.Time `json:"expiresAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IsExpired reports whether the link's own expiry has passed.
func (v *VerificationLink) IsExpired() bool {
	return time.Now().After(v.ExpiresAt)
}
