package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/middleware"
	"github.com/Cyberking99/WavePay/internal/user"
)

// RegisterUserRoutes wires profile endpoints.
func RegisterUserRoutes(r fiber.Router, h *user.Handler, users user.Repository) {
	group := r.Group("/user")
	group.Get("/me", middleware.RequireOnboarding(users), h.Me)
	group.Post("/onboard", h.Onboard)
	group.Get("/lookup/:username", h.Lookup)
}
