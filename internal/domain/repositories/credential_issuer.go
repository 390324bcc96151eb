package repositories

import "context"

// CredentialIssuer is the external collaborator that turns a consumed login
// token into a signed verification URL. The issuer persists its artifact
// into the verification link store keyed by the correlation id embedded in
// destinationURL; the orchestrator never sees that write directly and polls
// for it instead.
type CredentialIssuer interface {
	// RequestVerificationLink asks the issuer to produce an artifact for
	// email, redirecting to destinationURL once visited. The call returns as
	// soon as the request is accepted; artifact generation is asynchronous.
	RequestVerificationLink(ctx context.Context, email, destinationURL string) error
}
