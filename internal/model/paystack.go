package model

// Wire types for the slice of the Paystack REST API this service consumes.
// Field sets are intentionally partial: only what callers read.

type PaystackEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type PaystackSubaccount struct {
	ID               int     `json:"id"`
	SubaccountCode   string  `json:"subaccount_code"`
	BusinessName     string  `json:"business_name"`
	SettlementBank   string  `json:"settlement_bank"`
	AccountNumber    string  `json:"account_number"`
	PercentageCharge float64 `json:"percentage_charge"`
	Active           bool    `json:"active"`
}

type PaystackResolvedAccount struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

type PaystackAuthorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type PaystackTransaction struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"` // success, failed, abandoned
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"` // kobo
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
}

type PaystackRefund struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	Transaction string `json:"transaction"`
	Amount      int64  `json:"amount"`
}

type PaystackRecipient struct {
	RecipientCode string `json:"recipient_code"`
	Type          string `json:"type"`
	Name          string `json:"name"`
}

type PaystackTransfer struct {
	TransferCode string `json:"transfer_code"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Reference    string `json:"reference"`
}
