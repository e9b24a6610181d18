package transactions

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/auth"
)

// Handler exposes transaction endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a transaction HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type recordRequest struct {
	Hash   string `json:"hash"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Token  string `json:"token"`
	Type   string `json:"type"`
	LinkID string `json:"link_id"`
}

// ToResponse maps a ledger entry to its API shape.
func ToResponse(t Transaction) map[string]any {
	resp := map[string]any{
		"id":     t.ID,
		"hash":   t.Hash,
		"from":   t.From,
		"to":     t.To,
		"amount": t.Amount,
		"token":  t.Token,
		"type":   t.Type,
		"status": t.Status,
	}
	if t.LinkID != "" {
		resp["link_id"] = t.LinkID
	}
	if t.Payload != "" {
		resp["payload"] = t.Payload
	}
	return resp
}

// Record persists a client-reported transaction.
func (h *Handler) Record(c *fiber.Ctx) error {
	if _, ok := auth.FromContext(c); !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req recordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	t, err := h.service.Record(c.UserContext(), RecordInput{
		Hash:   req.Hash,
		From:   req.From,
		To:     req.To,
		Amount: req.Amount,
		Token:  req.Token,
		Type:   req.Type,
		LinkID: req.LinkID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrDuplicateHash):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return err
		}
	}
	return c.JSON(fiber.Map{"success": true, "transaction": ToResponse(t)})
}

// History lists entries touching the caller's address.
func (h *Handler) History(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	entries, err := h.service.History(c.UserContext(), p.Address)
	if err != nil {
		return err
	}
	data := make([]map[string]any, 0, len(entries))
	for _, t := range entries {
		data = append(data, ToResponse(t))
	}
	return c.JSON(fiber.Map{"success": true, "transactions": data})
}
