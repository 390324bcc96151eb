package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"passlink.backend/internal/domain/entities"
	"passlink.backend/internal/usecases"
	"passlink.backend/pkg/fingerprint"
)

// RedeemHandler handles the browser-facing redemption endpoint. Every outcome
// is a redirect: a resolved exchange sends the browser to the verification
// artifact, any failure sends it back to sign-in with a reason code.
type RedeemHandler struct {
	exchange  *usecases.ExchangeUsecase
	signInURL string
}

// NewRedeemHandler creates a new redeem handler
func NewRedeemHandler(exchange *usecases.ExchangeUsecase, signInURL string) *RedeemHandler {
	return &RedeemHandler{
		exchange:  exchange,
		signInURL: signInURL,
	}
}

// Redeem consumes a one-time token from the magic link and drives the
// exchange to a terminal state
// GET /auth/redeem?token=&redirectTo=
func (h *RedeemHandler) Redeem(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Redirect(http.StatusFound, h.failureURL(entities.ReasonMissingToken))
		return
	}

	deviceBindingHash := fingerprint.Derive(c.Request.UserAgent(), c.ClientIP())

	result := h.exchange.Redeem(c.Request.Context(), token, c.Query("redirectTo"), deviceBindingHash)
	if !result.Resolved() {
		c.Redirect(http.StatusFound, h.failureURL(result.Reason))
		return
	}

	c.Redirect(http.StatusFound, result.ArtifactURL)
}

func (h *RedeemHandler) failureURL(reason entities.ExchangeReason) string {
	parsed, err := url.Parse(h.signInURL)
	if err != nil {
		return h.signInURL
	}
	q := parsed.Query()
	q.Set("error", string(reason))
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
