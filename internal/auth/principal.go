package auth

import "github.com/gofiber/fiber/v2"

// ContextKey is the fiber locals slot the auth middleware stores the
// principal under.
const ContextKey = "principal"

// Principal is the authenticated caller every coordinator receives
// explicitly. UserID is empty until a user row exists for the address.
type Principal struct {
	UserID  string
	Address string
}

// FromContext extracts the authenticated principal set by the signature
// middleware.
func FromContext(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(ContextKey).(Principal)
	return p, ok && p.Address != ""
}
