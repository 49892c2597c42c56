package dto

import "time"

// Envelope is the uniform response shape every endpoint returns:
// {success, data?, error?}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

// Health is the reserved health-check reply for function-style endpoints.
type Health struct {
	Success   bool      `json:"success"`
	Service   string    `json:"service"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type BankingDetails struct {
	BusinessName  string `json:"business_name"`
	BankName      string `json:"bank_name"`
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
}

type BankingResult struct {
	Success        bool   `json:"success"`
	SubaccountCode string `json:"subaccount_code,omitempty"`
	Error          string `json:"error,omitempty"`
}

type AccountValidation struct {
	Valid       bool   `json:"valid"`
	AccountName string `json:"account_name,omitempty"`
	Error       string `json:"error,omitempty"`
}

type SellerRequirements struct {
	HasBankingSetup      bool    `json:"has_banking_setup"`
	HasPickupAddress     bool    `json:"has_pickup_address"`
	HasActiveListings    bool    `json:"has_active_listings"`
	CompletionPercentage float64 `json:"completion_percentage"`
	CanReceivePayments   bool    `json:"can_receive_payments"`
}

// PendingCommit is the projection a seller sees for each sale awaiting
// confirmation: order and book joined, with the earnings breakdown attached.
type PendingCommit struct {
	OrderID        string    `json:"order_id"`
	BookID         string    `json:"book_id"`
	Title          string    `json:"title"`
	Price          float64   `json:"price"`
	BuyerName      string    `json:"buyer_name"`
	BuyerEmail     string    `json:"buyer_email"`
	SellerEarnings float64   `json:"seller_earnings"`
	PlatformFee    float64   `json:"platform_fee"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type CheckoutRequest struct {
	BuyerEmail  string   `json:"buyer_email"`
	BookIDs     []string `json:"book_ids"`
	DeliveryFee float64  `json:"delivery_fee"`
}

type CheckoutResponse struct {
	OrderID          string `json:"order_id"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
}

type VerifyRequest struct {
	Reference string `json:"reference"`
}

type TrackingUpdateRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type RefundRequest struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

type TransferRequest struct {
	OrderID string `json:"order_id"`
}

type SplitPreviewRequest struct {
	Price       float64 `json:"price"`
	DeliveryFee float64 `json:"delivery_fee"`
}

type QuoteRequest struct {
	From   Address `json:"from"`
	To     Address `json:"to"`
	Parcel Parcel  `json:"parcel"`
}

type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	Province string `json:"province"`
	Postal   string `json:"postal_code"`
}

// Parcel is carried for parity with real courier APIs; the static zone table
// does not use it.
type Parcel struct {
	WeightKg      float64 `json:"weight_kg"`
	LengthCm      float64 `json:"length_cm"`
	WidthCm       float64 `json:"width_cm"`
	HeightCm      float64 `json:"height_cm"`
	DeclaredValue float64 `json:"declared_value"`
}

type CreateBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
	Price       float64 `json:"price"`
	FrontCover  string  `json:"front_cover"`
	BackCover   string  `json:"back_cover"`
	Quantity    int     `json:"quantity"`
}

type BulkDeleteRequest struct {
	BookIDs []string `json:"book_ids"`
}

type PublicConfig struct {
	PaystackPublicKey string `json:"paystack_public_key"`
	GoogleMapsEnabled bool   `json:"google_maps_enabled"`
	GoogleMapsAPIKey  string `json:"google_maps_api_key,omitempty"`
	AppURL            string `json:"app_url,omitempty"`
}
