package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/auth"
	"github.com/Cyberking99/WavePay/internal/user"
)

const (
	headerWalletAddress = "x-wallet-address"
	headerSignature     = "x-api-key"
)

// SignatureAuth authenticates requests by recovering the signer of the fixed
// auth message from the x-api-key signature header and comparing it to the
// x-wallet-address header. On success the request principal is stored in
// locals for handlers to read via auth.FromContext.
//
// The user lookup is optional: /auth/verify runs before the user row exists,
// so an unknown address yields a principal with an empty UserID.
func SignatureAuth(users user.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		address := strings.TrimSpace(c.Get(headerWalletAddress))
		signature := strings.TrimSpace(c.Get(headerSignature))
		if address == "" || signature == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing wallet address or signature")
		}
		if err := auth.VerifySignature(address, auth.Message, signature); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid signature")
		}

		p := auth.Principal{Address: address}
		if users != nil {
			u, err := users.FindByAddress(c.UserContext(), address)
			switch {
			case err == nil:
				p.UserID = u.ID
				p.Address = u.Address
			case errors.Is(err, user.ErrNotFound):
				// first contact; verify handler will create the row
			default:
				return err
			}
		}
		c.Locals(auth.ContextKey, p)
		return c.Next()
	}
}

// RequireUser rejects requests whose principal has no persisted user row.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := auth.FromContext(c)
		if !ok || p.UserID == "" {
			return fiber.NewError(http.StatusUnauthorized, "account not registered")
		}
		return c.Next()
	}
}
