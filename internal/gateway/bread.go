package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	serviceKeyHeader = "x-service-key"
	requestTimeout   = 30 * time.Second
)

// Client talks to the Bread settlement API over HTTP and implements Provider.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a Bread API client.
func NewClient(baseURL, serviceKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// envelope is the wire shape every Bread endpoint responds with.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// VerifyIdentity checks a name/DOB/document triple against the identity verifier.
func (c *Client) VerifyIdentity(ctx context.Context, input VerifyIdentityInput) IdentityResult {
	details := map[string]string{"dob": input.DOB}
	switch input.Type {
	case "bvn":
		details["bvn"] = input.Number
	case "nin":
		details["nin"] = input.Number
	default:
		return IdentityResult{Message: fmt.Sprintf("unsupported identity type %q", input.Type)}
	}

	body := map[string]any{
		"type":    strings.ToUpper(input.Type),
		"name":    input.Name,
		"details": details,
	}

	var identity Identity
	ok, msg := c.do(ctx, http.MethodPost, "/identity", body, &identity)
	if !ok {
		return IdentityResult{Message: msg}
	}
	return IdentityResult{Success: true, Message: "Identity verified successfully.", Identity: identity}
}

// ListBanks fetches the rail's supported payout institutions.
func (c *Client) ListBanks(ctx context.Context) BanksResult {
	var banks []Bank
	ok, msg := c.do(ctx, http.MethodGet, "/banks", nil, &banks)
	if !ok {
		return BanksResult{Message: msg}
	}
	return BanksResult{Success: true, Banks: banks}
}

// VerifyBankAccount resolves the authoritative holder name of an account number.
func (c *Client) VerifyBankAccount(ctx context.Context, bankCode, accountNumber string) AccountResult {
	body := map[string]string{
		"bank_code":      bankCode,
		"account_number": accountNumber,
	}
	var account Account
	ok, msg := c.do(ctx, http.MethodPost, "/banks/verify", body, &account)
	if !ok {
		return AccountResult{Message: msg}
	}
	return AccountResult{Success: true, Account: account}
}

// CreateBeneficiary registers a payout destination against a verified identity.
func (c *Client) CreateBeneficiary(ctx context.Context, identityID, bankCode, accountNumber string) BeneficiaryResult {
	body := map[string]string{
		"identity_id":    identityID,
		"bank_code":      bankCode,
		"account_number": accountNumber,
	}
	var beneficiary Beneficiary
	ok, msg := c.do(ctx, http.MethodPost, "/beneficiaries", body, &beneficiary)
	if !ok {
		return BeneficiaryResult{Message: msg}
	}
	return BeneficiaryResult{Success: true, Beneficiary: beneficiary}
}

// GetRate fetches a time-bound conversion quote for a currency pair.
func (c *Client) GetRate(ctx context.Context, from, to string) RateResult {
	path := fmt.Sprintf("/rates?from=%s&to=%s", url.QueryEscape(from), url.QueryEscape(to))
	var rate Rate
	ok, msg := c.do(ctx, http.MethodGet, path, nil, &rate)
	if !ok {
		return RateResult{Message: msg}
	}
	return RateResult{Success: true, Rate: rate}
}

// CreateWallet provisions a custodial wallet keyed by a customer reference.
func (c *Client) CreateWallet(ctx context.Context, reference string) WalletResult {
	body := map[string]string{"reference": reference}
	var wallet Wallet
	ok, msg := c.do(ctx, http.MethodPost, "/wallets", body, &wallet)
	if !ok {
		return WalletResult{Message: msg}
	}
	if wallet.Reference == "" {
		wallet.Reference = reference
	}
	return WalletResult{Success: true, Wallet: wallet}
}

// CreateOfframp executes a fiat conversion out of a custodial wallet.
func (c *Client) CreateOfframp(ctx context.Context, input TransferInput) TransferResult {
	body := map[string]string{
		"amount":         input.Amount,
		"wallet_id":      input.WalletID,
		"beneficiary_id": input.BeneficiaryID,
		"asset":          input.Asset,
	}
	var payload map[string]any
	ok, msg := c.do(ctx, http.MethodPost, "/offramp", body, &payload)
	if !ok {
		return TransferResult{Message: msg}
	}
	return TransferResult{Success: true, Payload: payload}
}

// do issues one request and maps every failure mode into (false, message).
func (c *Client) do(ctx context.Context, method, path string, body, out any) (bool, string) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Sprintf("encode request: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, fmt.Sprintf("build request: %v", err)
	}
	req.Header.Set(serviceKeyHeader, c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("bread request failed", slog.String("path", path), slog.Any("error", err))
		}
		return false, "settlement provider unreachable"
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if c.logger != nil {
			c.logger.Warn("bread response malformed", slog.String("path", path), slog.Int("status", resp.StatusCode), slog.Any("error", err))
		}
		return false, "settlement provider returned a malformed response"
	}

	if !env.Success || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("settlement provider returned status %d", resp.StatusCode)
		}
		return false, msg
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return false, "settlement provider returned a malformed response"
		}
	}
	return true, env.Message
}
