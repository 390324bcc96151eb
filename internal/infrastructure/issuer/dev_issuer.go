package issuer

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"
	"passlink.backend/internal/domain/entities"
	"passlink.backend/internal/domain/repositories"
	"passlink.backend/internal/usecases"
	"passlink.backend/pkg/jwt"
	"passlink.backend/pkg/logger"
)

// DevIssuer is an in-process credential issuer standing in for the external
// identity system during development and tests. It signs a verification
// artifact and persists it into the link store after a short delay,
// reproducing the write-visibility gap the orchestrator's polling bridges in
// production.
type DevIssuer struct {
	linkRepo      repositories.VerificationLinkRepository
	signer        *jwt.Signer
	verifyBaseURL string
	artifactTTL   time.Duration
	delay         time.Duration
}

// NewDevIssuer creates a new dev issuer
func NewDevIssuer(linkRepo repositories.VerificationLinkRepository, signer *jwt.Signer, verifyBaseURL string, artifactTTL, delay time.Duration) *DevIssuer {
	return &DevIssuer{
		linkRepo:      linkRepo,
		signer:        signer,
		verifyBaseURL: verifyBaseURL,
		artifactTTL:   artifactTTL,
		delay:         delay,
	}
}

// RequestVerificationLink accepts the request synchronously and completes
// the artifact write in the background, like the real out-of-process issuer
// callback would.
func (i *DevIssuer) RequestVerificationLink(ctx context.Context, email, destinationURL string) error {
	correlationID, err := usecases.CorrelationFromDestination(destinationURL)
	if err != nil {
		return err
	}

	go func() {
		// Detached from the request context on purpose: the token is already
		// consumed, so the artifact write must land even if the caller goes
		// away.
		time.Sleep(i.delay)

		artifact, err := i.signer.SignArtifact(email, correlationID, destinationURL)
		if err != nil {
			logger.Error(context.Background(), "dev issuer failed to sign artifact", zap.Error(err))
			return
		}

		now := time.Now()
		link := &entities.VerificationLink{
			CorrelationID: correlationID,
			Email:         email,
			ArtifactURL:   i.verifyBaseURL + "?artifact=" + url.QueryEscape(artifact),
			ExpiresAt:     now.Add(i.artifactTTL),
			CreatedAt:     now,
		}
		if err := i.linkRepo.Put(context.Background(), link); err != nil {
			logger.Error(context.Background(), "dev issuer failed to persist verification link", zap.Error(err))
		}
	}()

	return nil
}
