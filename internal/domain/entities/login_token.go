package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// LoginToken represents a one-time login token issued out-of-band.
// The token value itself is the lookup key; ConsumedAt flips from null to a
// timestamp exactly once.
type LoginToken struct {
	ID                uuid.UUID `json:"id"`
	Token             string    `json:"-"`
	Email             string    `json:"email"`
	CallbackURL       string    `json:"callbackUrl,omitempty"`
	DeviceBindingHash string    `json:"-"`
	IssuedAt          time.Time `json:"issuedAt"`
	ExpiresAt         time.Time `json:"expiresAt"`
	ConsumedAt        null.Time `json:"consumedAt,omitempty"`
}

// IsConsumed reports whether the token was already redeemed.
func (t *LoginToken) IsConsumed() bool {
	return t.ConsumedAt.Valid
}

// IsExpired reports whether the token is past its expiry.
func (t *LoginToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IssueTokenInput represents input for issuing a login token
type IssueTokenInput struct {
	Email             string `json:"email" binding:"required,email"`
	CallbackURL       string `json:"callbackUrl"`
	DeviceBindingHash string `json:"deviceBindingHash"`
	InvalidatePrior   bool   `json:"invalidatePrior"`
}

// IssuedToken is the result of issuing a login token
type IssuedToken struct {
	Token     string `json:"token"`
	RedeemURL string `json:"redeemUrl"`
}
