package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/auth"
	"github.com/Cyberking99/WavePay/internal/user"
)

// RequireOnboarding gates routes that need a completed profile (full name
// and username set during onboarding).
func RequireOnboarding(users user.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := auth.FromContext(c)
		if !ok || p.UserID == "" {
			return fiber.NewError(http.StatusUnauthorized, "account not registered")
		}
		u, err := users.FindByID(c.UserContext(), p.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return fiber.NewError(http.StatusUnauthorized, "account not registered")
			}
			return err
		}
		if !u.Onboarded {
			return fiber.NewError(http.StatusForbidden, "onboarding required")
		}
		return c.Next()
	}
}
