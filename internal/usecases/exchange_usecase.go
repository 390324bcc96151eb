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
	"passlink.backend/pkg/logger"
	"passlink.backend/pkg/metrics"
)

// CorrelationParam is the query parameter carrying the correlation id on the
// destination URL handed to the credential issuer. The issuer echoes it back
// when persisting the verification link.
const CorrelationParam = "correlation_id"

// ExchangePolicy bounds the correlation polling loop
type ExchangePolicy struct {
	PollAttempts int
	PollInterval time.Duration
}

// ExchangeUsecase drives a single redemption attempt: consume the one-time
// token, ask the issuer for a verification link tagged with a fresh
// correlation id, then poll for the link to appear.
type ExchangeUsecase struct {
	tokens   *TokenUsecase
	linkRepo repositories.VerificationLinkRepository
	issuer   repositories.CredentialIssuer
	policy   ExchangePolicy
}

// NewExchangeUsecase creates a new exchange usecase
func NewExchangeUsecase(tokens *TokenUsecase, linkRepo repositories.VerificationLinkRepository, issuer repositories.CredentialIssuer, policy ExchangePolicy) *ExchangeUsecase {
	return &ExchangeUsecase{
		tokens:   tokens,
		linkRepo: linkRepo,
		issuer:   issuer,
		policy:   policy,
	}
}

// Redeem runs the exchange state machine to a terminal state. Every failure
// is terminal and carries a reason code; nothing is retried beyond the
// bounded polling, and a failed consumption is never re-attempted.
func (u *ExchangeUsecase) Redeem(ctx context.Context, token, redirectTo, deviceBindingHash string) *entities.ExchangeResult {
	record, err := u.tokens.ValidateAndConsume(ctx, token, deviceBindingHash)
	if err != nil {
		if IsNotFound(err) {
			return u.fail(ctx, entities.ReasonInvalidToken, err)
		}
		// Storage failures are unexpected; logged and surfaced as an
		// authentication error like any other issuer-side breakage.
		return u.fail(ctx, entities.ReasonAuthenticationError, err)
	}

	correlationID := uuid.New()
	ctx = logger.WithCorrelationID(ctx, correlationID.String())

	// The explicit redirect target wins over the destination stored with the
	// token at issue time.
	destination := redirectTo
	if destination == "" {
		destination = record.CallbackURL
	}

	if err := u.issuer.RequestVerificationLink(ctx, record.Email, AnnotateDestination(destination, correlationID)); err != nil {
		logger.Error(ctx, "credential issuer invocation failed", zap.Error(err))
		return u.fail(ctx, entities.ReasonAuthenticationError, err)
	}

	link, err := u.linkRepo.GetWithRetry(ctx, correlationID, u.policy.PollAttempts, u.policy.PollInterval)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrLinkTimeout):
			metrics.ExchangeOutcomes.WithLabelValues(string(entities.ReasonLinkGenerationFailed)).Inc()
			logger.Warn(ctx, "verification link never appeared", zap.String("email", record.Email))
			return &entities.ExchangeResult{
				State:  entities.StateArtifactTimedOut,
				Reason: entities.ReasonLinkGenerationFailed,
				Email:  record.Email,
			}
		case errors.Is(err, domainerrors.ErrLinkExpired):
			metrics.ExchangeOutcomes.WithLabelValues(string(entities.ReasonLinkExpired)).Inc()
			return &entities.ExchangeResult{
				State:  entities.StateArtifactExpired,
				Reason: entities.ReasonLinkExpired,
				Email:  record.Email,
			}
		default:
			return u.fail(ctx, entities.ReasonAuthenticationError, err)
		}
	}

	metrics.ExchangeOutcomes.WithLabelValues("resolved").Inc()
	logger.Info(ctx, "exchange resolved", zap.String("email", record.Email))
	return &entities.ExchangeResult{
		State:       entities.StateArtifactResolved,
		ArtifactURL: link.ArtifactURL,
		Email:       record.Email,
	}
}

func (u *ExchangeUsecase) fail(ctx context.Context, reason entities.ExchangeReason, err error) *entities.ExchangeResult {
	metrics.ExchangeOutcomes.WithLabelValues(string(reason)).Inc()
	logger.Warn(ctx, "exchange failed", zap.String("reason", string(reason)), zap.Error(err))
	return &entities.ExchangeResult{
		State:  entities.StateFailed,
		Reason: reason,
	}
}

// AnnotateDestination appends the correlation id to the destination URL so
// the issuer's callback can key its write
func AnnotateDestination(destination string, correlationID uuid.UUID) string {
	parsed, err := url.Parse(destination)
	if err != nil {
		return destination
	}
	q := parsed.Query()
	q.Set(CorrelationParam, correlationID.String())
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

// CorrelationFromDestination extracts the correlation id a destination URL
// was annotated with
func CorrelationFromDestination(destination string) (uuid.UUID, error) {
	parsed, err := url.Parse(destination)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(parsed.Query().Get(CorrelationParam))
}
