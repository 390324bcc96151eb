package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// ArtifactClaims are the claims carried by a signed verification artifact
type ArtifactClaims struct {
	Email         string    `json:"email"`
	CorrelationID uuid.UUID `json:"correlationId"`
	Destination   string    `json:"destination"`
	jwt.RegisteredClaims
}

// Signer signs and validates verification artifacts
type Signer struct {
	secret []byte
	expiry time.Duration
}

var signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

// NewSigner creates a new artifact signer
func NewSigner(secret string, expiry time.Duration) *Signer {
	return &Signer{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// SignArtifact produces a signed, time-boxed verification credential for the
// given identity and exchange attempt
func (s *Signer) SignArtifact(email string, correlationID uuid.UUID, destination string) (string, error) {
	now := time.Now()
	claims := &ArtifactClaims{
		Email:         email,
		CorrelationID: correlationID,
		Destination:   destination,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signJWTToken(token, s.secret)
}

// ValidateArtifact validates a signed artifact and returns its claims
func (s *Signer) ValidateArtifact(tokenString string) (*ArtifactClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ArtifactClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ArtifactClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
