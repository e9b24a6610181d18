package offramp

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/auth"
	"github.com/Cyberking99/WavePay/internal/bank"
	"github.com/Cyberking99/WavePay/internal/gateway"
	"github.com/Cyberking99/WavePay/internal/transactions"
)

// Handler exposes off-ramp endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an off-ramp HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Rate returns a fresh conversion quote for a token.
func (h *Handler) Rate(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok || p.UserID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	token := c.Query("token", "usdc")
	quote, err := h.service.Rate(c.UserContext(), token)
	if err != nil {
		var upstream *gateway.UpstreamError
		switch {
		case errors.As(err, &upstream):
			return fiber.NewError(http.StatusBadGateway, upstream.Message)
		case errors.Is(err, ErrQuoteExpired):
			return fiber.NewError(http.StatusBadGateway, "provider returned an expired quote")
		default:
			return err
		}
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"quote_id":   quote.ID,
		"token":      quote.Token,
		"rate":       quote.Rate,
		"expires_at": quote.ExpiresAt.UTC().Format(time.RFC3339),
	}})
}

type executeRequest struct {
	Token         string `json:"token"`
	Amount        string `json:"amount"`
	BankAccountID string `json:"bank_account_id"`
	TxHash        string `json:"tx_hash"`
	QuoteID       string `json:"quote_id"`
}

// Execute converts custodial balance to fiat.
func (h *Handler) Execute(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok || p.UserID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req executeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.Execute(c.UserContext(), p.UserID, ExecuteInput{
		Token:         req.Token,
		Amount:        req.Amount,
		BankAccountID: req.BankAccountID,
		TxHash:        req.TxHash,
		QuoteID:       req.QuoteID,
	})
	if err != nil {
		var upstream *gateway.UpstreamError
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNoWallet):
			return fiber.NewError(http.StatusForbidden, err.Error())
		case errors.Is(err, bank.ErrAccountNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrQuoteExpired):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, transactions.ErrDuplicateHash):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.As(err, &upstream):
			return fiber.NewError(http.StatusBadGateway, upstream.Message)
		default:
			return err
		}
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"transaction": transactions.ToResponse(entry),
	})
}
