package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/links"
)

// RegisterLinkRoutes wires payment link endpoints.
func RegisterLinkRoutes(r fiber.Router, h *links.Handler) {
	group := r.Group("/links")
	group.Post("/", h.Create)
	group.Get("/", h.List)
}
