package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/transactions"
)

// RegisterTransactionRoutes wires ledger endpoints.
func RegisterTransactionRoutes(r fiber.Router, h *transactions.Handler) {
	group := r.Group("/transactions")
	group.Post("/", h.Record)
	group.Get("/", h.History)
}
