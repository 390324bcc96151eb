package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CallbackSecretHeader authenticates both directions of the webhook
// exchange: this service sets it when invoking the issuer, and the issuer
// sets it when posting the finished link back.
const CallbackSecretHeader = "X-Issuer-Secret"

// WebhookIssuer invokes an external credential issuer over HTTP. The issuer
// generates the artifact on its own schedule and writes it back through the
// verification-link callback endpoint.
type WebhookIssuer struct {
	endpoint string
	secret   string
	client   *http.Client
}

// NewWebhookIssuer creates a new webhook issuer
func NewWebhookIssuer(endpoint, secret string) *WebhookIssuer {
	return &WebhookIssuer{
		endpoint: endpoint,
		secret:   secret,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookRequest struct {
	Email          string `json:"email"`
	DestinationURL string `json:"destinationUrl"`
}

// RequestVerificationLink posts the generation request to the external
// issuer. Only acceptance is synchronous; the artifact arrives later via
// the callback.
func (i *WebhookIssuer) RequestVerificationLink(ctx context.Context, email, destinationURL string) error {
	body, err := json.Marshal(webhookRequest{Email: email, DestinationURL: destinationURL})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(CallbackSecretHeader, i.secret)

	resp, err := i.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("issuer webhook returned status %d", resp.StatusCode)
	}
	return nil
}
