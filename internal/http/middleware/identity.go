package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// IdentityHeader carries the authenticated user id, set by the external
	// auth layer (reverse proxy or API gateway) in front of this service.
	IdentityHeader = "X-User-ID"
	// IdentityLocalKey is the key under which the user id is stored in
	// Fiber's context locals.
	IdentityLocalKey = "user_id"
)

// Identity copies the trusted identity header into context locals for
// downstream handlers. It does not reject anonymous requests.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Get(IdentityHeader); id != "" {
			c.Locals(IdentityLocalKey, id)
		}
		return c.Next()
	}
}

// RequireIdentity rejects requests without an authenticated user. Mounted
// on mutation routes only; reads are served from the snapshot regardless.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}

// UserID returns the authenticated user id for the request, or "".
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(IdentityLocalKey).(string); ok {
		return v
	}
	return ""
}
