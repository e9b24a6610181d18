package user

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/auth"
)

// Handler exposes user and auth endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type userResponse struct {
	Address   string `json:"address"`
	FullName  string `json:"full_name,omitempty"`
	Username  string `json:"username,omitempty"`
	Onboarded bool   `json:"onboarded"`
	KycStatus string `json:"kyc_status"`
}

func toResponse(u User) userResponse {
	return userResponse{
		Address:   u.Address,
		FullName:  u.FullName,
		Username:  u.Username,
		Onboarded: u.Onboarded,
		KycStatus: string(u.KycStatus),
	}
}

// Verify finds or creates the user behind the authenticated address.
func (h *Handler) Verify(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	u, _, err := h.service.Verify(c.UserContext(), p.Address)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":      true,
		"user":         toResponse(u),
		"is_onboarded": u.Onboarded,
	})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	u, err := h.service.ByAddress(c.UserContext(), p.Address)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "user not found")
	}
	return c.JSON(fiber.Map{"success": true, "user": toResponse(u)})
}

type onboardRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

// Onboard records the profile fields collected after first login.
func (h *Handler) Onboard(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req onboardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	u, err := h.service.Onboard(c.UserContext(), p.Address, req.FullName, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUsernameTaken):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return err
		}
	}
	return c.JSON(fiber.Map{"success": true, "user": toResponse(u)})
}

// Lookup resolves a user by username.
func (h *Handler) Lookup(c *fiber.Ctx) error {
	username := c.Params("username")
	u, err := h.service.Lookup(c.UserContext(), username)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "user not found")
	}
	return c.JSON(fiber.Map{"success": true, "user": fiber.Map{
		"address":   u.Address,
		"username":  u.Username,
		"full_name": u.FullName,
	}})
}
