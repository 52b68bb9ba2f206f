package session

import (
	"github.com/gofiber/fiber/v2"
)

const localsKey = "session"

// SignInPath is where unauthenticated users are sent.
const SignInPath = "/"

// LoadSession puts the request's Session into Locals. It never rejects a
// request; handlers decide what a missing credential means for them.
func LoadSession(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localsKey, store.Load(c))
		return c.Next()
	}
}

// RequireSession redirects requests without a credential to the sign-in
// page.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !FromCtx(c).Authenticated() {
			return c.Redirect(SignInPath, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// FromCtx returns the Session loaded by LoadSession, or an empty one.
func FromCtx(c *fiber.Ctx) *Session {
	if s, ok := c.Locals(localsKey).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}
