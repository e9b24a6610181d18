package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/offramp"
)

// RegisterOfframpRoutes wires conversion endpoints.
func RegisterOfframpRoutes(r fiber.Router, h *offramp.Handler) {
	group := r.Group("/offramp")
	group.Get("/rate", h.Rate)
	group.Post("/", h.Execute)
}
