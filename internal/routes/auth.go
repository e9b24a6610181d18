package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/user"
)

// RegisterAuthRoutes wires the signature verification endpoint.
func RegisterAuthRoutes(r fiber.Router, h *user.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/verify", rateLimiter, h.Verify)
	} else {
		group.Post("/verify", h.Verify)
	}
}
