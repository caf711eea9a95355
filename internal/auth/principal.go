package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/expensio/expensio-backend/internal/domain"
)

const principalKey = "principal"

// Principal is the authenticated identity attached to a request after token
// validation. It is an immutable value; services receive it explicitly and
// never look authentication state up from ambient/global context.
type Principal struct {
	ID   uuid.UUID
	Role domain.Role
}

// PrincipalFromCtx returns the principal stored by Middleware. The bool is
// false on routes that did not pass through it.
func PrincipalFromCtx(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalKey).(Principal)
	return p, ok
}
