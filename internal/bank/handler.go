package bank

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyberking99/WavePay/internal/auth"
	"github.com/Cyberking99/WavePay/internal/gateway"
)

// Handler exposes bank account endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a bank HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type addRequest struct {
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
}

type accountResponse struct {
	ID            string `json:"id"`
	BankCode      string `json:"bank_code"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BeneficiaryID string `json:"beneficiary_id"`
}

func toAccountResponse(a Account) accountResponse {
	return accountResponse{
		ID:            a.ID,
		BankCode:      a.BankCode,
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		AccountName:   a.AccountName,
		BeneficiaryID: a.BeneficiaryID,
	}
}

// Add verifies and links a bank account for the authenticated user.
func (h *Handler) Add(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok || p.UserID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Add(c.UserContext(), p.UserID, req.BankCode, req.AccountNumber)
	if err != nil {
		var upstream *gateway.UpstreamError
		switch {
		case errors.Is(err, ErrMissingFields):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrIdentityRequired):
			return fiber.NewError(http.StatusForbidden, err.Error())
		case errors.As(err, &upstream):
			return fiber.NewError(http.StatusBadGateway, upstream.Message)
		default:
			return err
		}
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Bank account added successfully",
		"data":    toAccountResponse(account),
	})
}

// List returns the authenticated user's linked accounts.
func (h *Handler) List(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok || p.UserID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	accounts, err := h.service.List(c.UserContext(), p.UserID)
	if err != nil {
		return err
	}
	data := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		data = append(data, toAccountResponse(a))
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// Delete removes a linked account owned by the authenticated user.
func (h *Handler) Delete(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok || p.UserID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	if err := h.service.Delete(c.UserContext(), p.UserID, c.Params("id")); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Bank account deleted successfully"})
}

// Banks lists supported payout institutions.
func (h *Handler) Banks(c *fiber.Ctx) error {
	banks, err := h.service.Banks(c.UserContext())
	if err != nil {
		var upstream *gateway.UpstreamError
		if errors.As(err, &upstream) {
			return fiber.NewError(http.StatusBadGateway, upstream.Message)
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": banks})
}
