package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/config"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/model"
)

type PaystackClient interface {
	CreateSubaccount(ctx context.Context, businessName, bankCode, accountNumber string, percentageCharge float64) (*model.PaystackSubaccount, error)
	UpdateSubaccount(ctx context.Context, subaccountCode, businessName, bankCode, accountNumber string) (*model.PaystackSubaccount, error)
	ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*model.PaystackResolvedAccount, error)
	InitializeTransaction(ctx context.Context, email string, amountKobo int64, reference, subaccountCode string) (*model.PaystackAuthorization, error)
	VerifyTransaction(ctx context.Context, reference string) (*model.PaystackTransaction, error)
	CreateRefund(ctx context.Context, reference string, amountKobo int64) (*model.PaystackRefund, error)
	CreateTransferRecipient(ctx context.Context, name, bankCode, accountNumber string) (*model.PaystackRecipient, error)
	InitiateTransfer(ctx context.Context, recipientCode string, amountKobo int64, reason string) (*model.PaystackTransfer, error)
}

type paystackClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

func NewPaystackClient(cfg *config.Paystack) PaystackClient {
	return &paystackClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		secretKey:  cfg.SecretKey,
	}
}

// call performs one authenticated request and decodes the "data" member of
// the Paystack envelope into out. Non-2xx responses come back as errors
// carrying the response body.
func (c *paystackClientImpl) call(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal req payload: %w", err)
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseApiURL+path, body)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// transport failure: the provider is unreachable, not declining
		return fmt.Errorf("http client do: %w: %w", err, fault.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("paystack error %d: %s: %w", resp.StatusCode, string(b), fault.ErrUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("paystack error %d: %s", resp.StatusCode, string(b))
	}

	var envelope struct {
		model.PaystackEnvelope
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode paystack response: %w", err)
	}
	if !envelope.Status {
		return fmt.Errorf("paystack declined: %s", envelope.Message)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode paystack data: %w", err)
		}
	}
	return nil
}

func (c *paystackClientImpl) CreateSubaccount(ctx context.Context, businessName, bankCode, accountNumber string, percentageCharge float64) (*model.PaystackSubaccount, error) {
	payload := map[string]interface{}{
		"business_name":     businessName,
		"settlement_bank":   bankCode,
		"account_number":    accountNumber,
		"percentage_charge": percentageCharge,
		"currency":          "ZAR",
	}

	var sub model.PaystackSubaccount
	if err := c.call(ctx, http.MethodPost, "/subaccount", payload, &sub); err != nil {
		return nil, fmt.Errorf("create subaccount: %w", err)
	}
	return &sub, nil
}

func (c *paystackClientImpl) UpdateSubaccount(ctx context.Context, subaccountCode, businessName, bankCode, accountNumber string) (*model.PaystackSubaccount, error) {
	payload := map[string]interface{}{
		"business_name":   businessName,
		"settlement_bank": bankCode,
		"account_number":  accountNumber,
	}

	var sub model.PaystackSubaccount
	if err := c.call(ctx, http.MethodPut, "/subaccount/"+subaccountCode, payload, &sub); err != nil {
		return nil, fmt.Errorf("update subaccount: %w", err)
	}
	return &sub, nil
}

func (c *paystackClientImpl) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*model.PaystackResolvedAccount, error) {
	query := url.Values{}
	query.Set("account_number", accountNumber)
	query.Set("bank_code", bankCode)

	var resolved model.PaystackResolvedAccount
	if err := c.call(ctx, http.MethodGet, "/bank/resolve?"+query.Encode(), nil, &resolved); err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}
	return &resolved, nil
}

func (c *paystackClientImpl) InitializeTransaction(ctx context.Context, email string, amountKobo int64, reference, subaccountCode string) (*model.PaystackAuthorization, error) {
	payload := map[string]interface{}{
		"email":     email,
		"amount":    amountKobo,
		"reference": reference,
		"currency":  "ZAR",
	}
	if subaccountCode != "" {
		payload["subaccount"] = subaccountCode
		// The seller subaccount carries the transaction; the platform
		// commission stays on the main account.
		payload["bearer"] = "subaccount"
	}

	var auth model.PaystackAuthorization
	if err := c.call(ctx, http.MethodPost, "/transaction/initialize", payload, &auth); err != nil {
		return nil, fmt.Errorf("initialize transaction: %w", err)
	}
	return &auth, nil
}

func (c *paystackClientImpl) VerifyTransaction(ctx context.Context, reference string) (*model.PaystackTransaction, error) {
	var txn model.PaystackTransaction
	if err := c.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &txn); err != nil {
		return nil, fmt.Errorf("verify transaction: %w", err)
	}
	return &txn, nil
}

func (c *paystackClientImpl) CreateRefund(ctx context.Context, reference string, amountKobo int64) (*model.PaystackRefund, error) {
	payload := map[string]interface{}{
		"transaction": reference,
	}
	if amountKobo > 0 {
		payload["amount"] = amountKobo
	}

	var refund model.PaystackRefund
	if err := c.call(ctx, http.MethodPost, "/refund", payload, &refund); err != nil {
		return nil, fmt.Errorf("create refund: %w", err)
	}
	return &refund, nil
}

func (c *paystackClientImpl) CreateTransferRecipient(ctx context.Context, name, bankCode, accountNumber string) (*model.PaystackRecipient, error) {
	payload := map[string]interface{}{
		"type":           "basa",
		"name":           name,
		"bank_code":      bankCode,
		"account_number": accountNumber,
		"currency":       "ZAR",
	}

	var recipient model.PaystackRecipient
	if err := c.call(ctx, http.MethodPost, "/transferrecipient", payload, &recipient); err != nil {
		return nil, fmt.Errorf("create transfer recipient: %w", err)
	}
	return &recipient, nil
}

func (c *paystackClientImpl) InitiateTransfer(ctx context.Context, recipientCode string, amountKobo int64, reason string) (*model.PaystackTransfer, error) {
	payload := map[string]interface{}{
		"source":    "balance",
		"recipient": recipientCode,
		"amount":    amountKobo,
		"reason":    reason,
	}

	var transfer model.PaystackTransfer
	if err := c.call(ctx, http.MethodPost, "/transfer", payload, &transfer); err != nil {
		return nil, fmt.Errorf("initiate transfer: %w", err)
	}
	return &transfer, nil
}
