package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/bank"
)

// RegisterBankRoutes wires bank directory and linked account endpoints.
func RegisterBankRoutes(r fiber.Router, h *bank.Handler) {
	group := r.Group("/bank")
	group.Get("/list", h.Banks)
	group.Post("/", h.Add)
	group.Get("/", h.List)
	group.Delete("/:id", h.Delete)
}
