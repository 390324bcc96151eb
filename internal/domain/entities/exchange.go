package entities

// ExchangeReason is the browser-facing reason code attached to a failed
// exchange when redirecting back to the sign-in page.
type ExchangeReason string

const (
	ReasonMissingToken         ExchangeReason = "missing_token"
	ReasonInvalidToken         ExchangeReason = "invalid_or_expired_token"
	ReasonAuthenticationError  ExchangeReason = "authentication_error"
	ReasonLinkGenerationFailed ExchangeReason = "link_generation_failed"
	ReasonLinkExpired          ExchangeReason = "link_expired"
)

// ExchangeState tracks where a single exchange attempt terminated.
type ExchangeState string

const (
	StateTokenConsumed     ExchangeState = "TOKEN_CONSUMED"
	StateArtifactRequested ExchangeState = "ARTIFACT_REQUESTED"
	StateArtifactResolved  ExchangeState = "ARTIFACT_RESOLVED"
	StateArtifactExpired   ExchangeState = "ARTIFACT_EXPIRED"
	StateArtifactTimedOut  ExchangeState = "ARTIFACT_TIMED_OUT"
	StateFailed            ExchangeState = "FAILED"
)

// ExchangeResult is the terminal outcome of one redemption attempt.
type ExchangeResult struct {
	State       ExchangeState  `json:"state"`
	Reason      ExchangeReason `json:"reason,omitempty"`
	ArtifactURL string         `json:"artifactUrl,omitempty"`
	Email       string         `json:"email,omitempty"`
}

// Resolved reports whether the exchange completed with a usable artifact.
func (r *ExchangeResult) Resolved() bool {
	return r.State == StateArtifactResolved
}
