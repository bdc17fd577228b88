package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freedalab/ticketflow/internal/api/dto"
	"github.com/freedalab/ticketflow/internal/auth"
	"github.com/freedalab/ticketflow/internal/config"
	apperrors "github.com/freedalab/ticketflow/pkg/util/errorutil"
)

// AuthHandler exchanges the admin key for a bearer token.
type AuthHandler struct {
	cfg    config.AuthConfig
	tokens *auth.TokenManager
}

// NewAuthHandler returns a new handler instance.
func NewAuthHandler(cfg config.AuthConfig, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{cfg: cfg, tokens: tokens}
}

// Token POST /auth/token.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	if !h.cfg.Enabled() {
		return apperrors.NewUnauthorized("auth disabled")
	}

	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := auth.VerifyAdminKey(h.cfg.AdminKeyHash, req.Key); err != nil {
		return apperrors.NewUnauthorized("invalid admin key")
	}

	token, expiresAt, err := h.tokens.GenerateToken()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}
