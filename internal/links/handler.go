package links

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/auth"
)

// Handler exposes payment link endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a link HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Amount       string         `json:"amount"`
	Description  string         `json:"description"`
	Type         string         `json:"type"`
	ExpiryDate   *time.Time     `json:"expiry_date"`
	CustomFields map[string]any `json:"custom_fields"`
}

func toResponse(l Link) fiber.Map {
	resp := fiber.Map{
		"link_id":     l.LinkID,
		"address":     l.Address,
		"amount":      l.Amount,
		"description": l.Description,
		"type":        l.Type,
		"active":      l.Active,
		"uses":        l.Uses,
	}
	if l.ExpiryDate != nil {
		resp["expiry_date"] = l.ExpiryDate.UTC().Format(time.RFC3339)
	}
	return resp
}

// Create mints a payment link for the authenticated user.
func (h *Handler) Create(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok || p.UserID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	l, err := h.service.Create(c.UserContext(), p.UserID, p.Address, CreateInput{
		Amount:       req.Amount,
		Description:  req.Description,
		Type:         req.Type,
		ExpiryDate:   req.ExpiryDate,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "link": toResponse(l)})
}

// List returns the authenticated user's links.
func (h *Handler) List(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok || p.UserID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	result, err := h.service.List(c.UserContext(), p.UserID)
	if err != nil {
		return err
	}
	data := make([]fiber.Map, 0, len(result))
	for _, l := range result {
		data = append(data, toResponse(l))
	}
	return c.JSON(fiber.Map{"success": true, "links": data})
}
