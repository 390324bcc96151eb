package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSignAndValidateArtifact(t *testing.T) {
	s := NewSigner("test-secret", 5*time.Minute)
	corrID := uuid.New()

	tok, err := s.SignArtifact("alice@example.com", corrID, "https://app.example.com/dashboard")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := s.ValidateArtifact(tok)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, corrID, claims.CorrelationID)
	require.Equal(t, "https://app.example.com/dashboard", claims.Destination)
}

func TestValidateArtifact_WrongSecret(t *testing.T) {
	s := NewSigner("secret-a", 5*time.Minute)
	tok, err := s.SignArtifact("alice@example.com", uuid.New(), "https://x")
	require.NoError(t, err)

	other := NewSigner("secret-b", 5*time.Minute)
	_, err = other.ValidateArtifact(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateArtifact_Expired(t *testing.T) {
	s := NewSigner("test-secret", -time.Minute)
	tok, err := s.SignArtifact("alice@example.com", uuid.New(), "https://x")
	require.NoError(t, err)

	_, err = s.ValidateArtifact(tok)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateArtifact_Garbage(t *testing.T) {
	s := NewSigner("test-secret", time.Minute)
	_, err := s.ValidateArtifact("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateArtifact_RejectsNonHMAC(t *testing.T) {
	s := NewSigner("test-secret", time.Minute)

	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, &ArtifactClaims{Email: "alice@example.com"})
	unsigned, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.ValidateArtifact(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignArtifact_SignError(t *testing.T) {
	orig := signJWTToken
	signJWTToken = func(*gojwt.Token, []byte) (string, error) { return "", errors.New("sign failed") }
	defer func() { signJWTToken = orig }()

	s := NewSigner("test-secret", time.Minute)
	_, err := s.SignArtifact("alice@example.com", uuid.New(), "https://x")
	require.Error(t, err)
}
