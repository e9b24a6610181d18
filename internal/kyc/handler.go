package kyc

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/auth"
	"github.com/Cyberking99/WavePay/internal/user"
)

// Handler exposes KYC endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a KYC HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitRequest struct {
	DOB            string `json:"dob"`
	IdentityType   string `json:"identity_type"`
	IdentityNumber string `json:"identity_number"`
}

// Submit runs one verification attempt for the authenticated user.
func (h *Handler) Submit(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok || p.UserID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Submit(c.UserContext(), p.UserID, SubmitInput{
		DOB:            req.DOB,
		IdentityType:   req.IdentityType,
		IdentityNumber: req.IdentityNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidIdentityType):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAlreadySubmitted):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, user.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return err
		}
	}

	if result.Status == user.KycRejected {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": result.Message,
			"data":    fiber.Map{"status": string(result.Status)},
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "KYC verified successfully",
		"data": fiber.Map{
			"status":      string(result.Status),
			"identity_id": result.IdentityID,
		},
	})
}

// Status reports the persisted verification state.
func (h *Handler) Status(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok || p.UserID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	result, err := h.service.Status(c.UserContext(), p.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return err
	}
	data := fiber.Map{"status": string(result.Status)}
	if result.WalletAddress != "" {
		data["wallet_address"] = result.WalletAddress
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}
