package middleware

import (
	"errors"
	"strings"

	"jobboard/internal/domain/identity"
	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxIdentityKey = "identity"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Optional resolves the caller when a bearer token is present and leaves
// the request anonymous when it is absent. A malformed or expired token is
// still rejected: optional means "no token", not "any token".
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		header := strings.TrimSpace(c.Get("Authorization"))
		if header == "" {
			return c.Next()
		}

		ident, err := m.resolve(header)
		if err != nil {
			return err
		}
		c.Locals(CtxIdentityKey, ident)
		return c.Next()
	}
}

// RequireAdmin rejects anonymous (401) and non-admin (403) callers.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		header := strings.TrimSpace(c.Get("Authorization"))
		if header == "" {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		ident, err := m.resolve(header)
		if err != nil {
			return err
		}
		if !ident.Admin {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
		c.Locals(CtxIdentityKey, ident)
		return c.Next()
	}
}

func (m *AuthMiddleware) resolve(authHeader string) (*identity.Identity, error) {
	token, ok := bearerTokenFromHeader(authHeader)
	if !ok {
		return nil, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
		}
		return nil, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}

	return &identity.Identity{
		UserID:        claims.UserID,
		EmailVerified: claims.EmailVerified,
		Admin:         claims.Admin,
	}, nil
}

// IdentityFromCtx returns the resolved caller, or nil for anonymous requests.
func IdentityFromCtx(c fiber.Ctx) *identity.Identity {
	ident, _ := c.Locals(CtxIdentityKey).(*identity.Identity)
	return ident
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
