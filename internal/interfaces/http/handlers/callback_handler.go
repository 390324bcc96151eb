package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"passlink.backend/internal/domain/entities"
	domainerrors "passlink.backend/internal/domain/errors"
	"passlink.backend/internal/domain/repositories"
	"passlink.backend/internal/infrastructure/issuer"
	"passlink.backend/internal/interfaces/http/response"
)

// CallbackHandler receives verification links written back by an external
// credential issuer. Guarded by the shared callback secret; the orchestrator's
// polling picks the write up.
type CallbackHandler struct {
	linkRepo repositories.VerificationLinkRepository
	secret   string
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(linkRepo repositories.VerificationLinkRepository, secret string) *CallbackHandler {
	return &CallbackHandler{
		linkRepo: linkRepo,
		secret:   secret,
	}
}

type putLinkInput struct {
	CorrelationID string `json:"correlationId" binding:"required,uuid"`
	Email         string `json:"email" binding:"required,email"`
	ArtifactURL   string `json:"artifactUrl" binding:"required,url"`
	ExpiresAt     string `json:"expiresAt" binding:"required"`
}

// PutLink upserts the verification link for a correlation id
// POST /api/v1/internal/verification-links
func (h *CallbackHandler) PutLink(c *gin.Context) {
	if c.GetHeader(issuer.CallbackSecretHeader) != h.secret {
		response.Error(c, domainerrors.Unauthorized("invalid callback secret"))
		return
	}

	var input putLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	correlationID, err := uuid.Parse(input.CorrelationID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid correlation id"))
		return
	}
	expiresAt, err := time.Parse(time.RFC3339, input.ExpiresAt)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("expiresAt must be RFC 3339"))
		return
	}

	link := &entities.VerificationLink{
		CorrelationID: correlationID,
		Email:         input.Email,
		ArtifactURL:   input.ArtifactURL,
		ExpiresAt:     expiresAt,
		CreatedAt:     time.Now(),
	}
	if err := h.linkRepo.Put(c.Request.Context(), link); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
