package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "passlink.backend/internal/domain/errors"
	"passlink.backend/internal/interfaces/http/response"
	"passlink.backend/pkg/jwt"
)

// VerifyHandler validates verification artifacts minted by the in-process
// issuer. In production the artifact URL points at the external identity
// system instead and this endpoint is not routed.
type VerifyHandler struct {
	signer *jwt.Signer
}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler(signer *jwt.Signer) *VerifyHandler {
	return &VerifyHandler{signer: signer}
}

// Verify checks the signed artifact and reveals the verified identity
// GET /auth/verify?artifact=
func (h *VerifyHandler) Verify(c *gin.Context) {
	artifact := c.Query("artifact")
	if artifact == "" {
		response.Error(c, domainerrors.BadRequest("artifact query parameter is required"))
		return
	}

	claims, err := h.signer.ValidateArtifact(artifact)
	if err != nil {
		response.Error(c, domainerrors.Unauthorized("invalid or expired artifact"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"email":         claims.Email,
		"correlationId": claims.CorrelationID,
		"destination":   claims.Destination,
	})
}
