package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"passlink.backend/internal/domain/entities"
	domainerrors "passlink.backend/internal/domain/errors"
	"passlink.backend/internal/interfaces/http/response"
	"passlink.backend/internal/usecases"
)

// LinkHandler handles one-time login token management endpoints
type LinkHandler struct {
	tokens       *usecases.TokenUsecase
	recentWindow time.Duration
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(tokens *usecases.TokenUsecase, recentWindow time.Duration) *LinkHandler {
	return &LinkHandler{
		tokens:       tokens,
		recentWindow: recentWindow,
	}
}

// Issue mints a one-time token and returns the redeem URL it is embedded in.
// The caller (mail sender, support tooling) delivers it out-of-band.
// POST /api/v1/auth/links
func (h *LinkHandler) Issue(c *gin.Context) {
	var input entities.IssueTokenInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	issued, err := h.tokens.Issue(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token":     issued.Token,
		"redeemUrl": issued.RedeemURL,
	})
}

// Invalidate kills all live tokens for an identity
// POST /api/v1/auth/links/invalidate
func (h *LinkHandler) Invalidate(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	count, err := h.tokens.Invalidate(c.Request.Context(), input.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"invalidated": count,
	})
}

// Status reports whether an identity holds a live token and whether one was
// consumed within the elevated-trust window
// GET /api/v1/auth/links/status?email=
func (h *LinkHandler) Status(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, domainerrors.BadRequest("email query parameter is required"))
		return
	}

	ctx := c.Request.Context()
	hasValid, err := h.tokens.HasValidToken(ctx, email)
	if err != nil {
		response.Error(c, err)
		return
	}
	recentlyConsumed, err := h.tokens.HasRecentlyConsumedToken(ctx, email, h.recentWindow)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"hasValidToken":    hasValid,
		"recentlyConsumed": recentlyConsumed,
	})
}
