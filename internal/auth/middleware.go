package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/freedalab/ticketflow/pkg/util/errorutil"
)

const claimsKey = "auth_claims"

// Middleware validates bearer tokens on the mutating routes.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if claims.Role != RoleAdmin {
		return apperrors.NewUnauthorized("insufficient role")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}
