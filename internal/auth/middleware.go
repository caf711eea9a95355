package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/domain"
)

// UserSource reports whether an account exists and is still active. The
// check runs on every request so that deactivating an account invalidates
// its outstanding tokens immediately.
type UserSource interface {
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// Middleware is the single enforcement point for protected routes: bearer
// extraction, token validation, active-account check, principal stashing.
// Every failure mode returns the same unauthenticated error.
func Middleware(tokens *Tokens, users UserSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperr.ErrUnauthenticated
		}
		raw := strings.TrimSpace(parts[1])
		if raw == "" {
			return apperr.ErrUnauthenticated
		}

		p, err := tokens.Validate(raw)
		if err != nil {
			return apperr.ErrUnauthenticated
		}

		active, err := users.IsActive(c.UserContext(), p.ID)
		if err != nil || !active {
			return apperr.ErrUnauthenticated
		}

		c.Locals(principalKey, p)
		return c.Next()
	}
}

// RequireRole layers on Middleware; routes behind it reject principals of
// any other role.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFromCtx(c)
		if !ok {
			return apperr.ErrUnauthenticated
		}
		if p.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "forbidden")
		}
		return c.Next()
	}
}
