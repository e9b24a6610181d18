package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/kyc"
)

// RegisterKycRoutes wires identity verification endpoints.
func RegisterKycRoutes(r fiber.Router, h *kyc.Handler) {
	group := r.Group("/kyc")
	group.Post("/", h.Submit)
	group.Get("/status", h.Status)
}
