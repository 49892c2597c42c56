package service

import "github.com/shopspring/decimal"

// CommissionRate is the platform's cut of the book price. The delivery fee
// passes through to the courier untouched.
const CommissionRate = 0.10

// Split is a three-way payment breakdown in both rand (major units) and kobo
// (integer minor units, what Paystack consumes).
type Split struct {
	Total    float64 `json:"total"`
	Seller   float64 `json:"seller_amount"`
	Platform float64 `json:"platform_amount"`
	Delivery float64 `json:"delivery_amount"`

	TotalKobo    int64 `json:"total_kobo"`
	SellerKobo   int64 `json:"seller_kobo"`
	PlatformKobo int64 `json:"platform_kobo"`
	DeliveryKobo int64 `json:"delivery_kobo"`
}

// CalculateSplit breaks price+deliveryFee into seller, platform and courier
// portions. The platform amount is round-half-up of price x commission; the
// seller amount is derived by subtraction rather than rounded independently,
// so seller + platform always reconstructs the price exactly.
func CalculateSplit(price, deliveryFee float64) Split {
	p := decimal.NewFromFloat(price)
	fee := decimal.NewFromFloat(deliveryFee)

	platform := p.Mul(decimal.NewFromFloat(CommissionRate)).Round(0)
	seller := p.Sub(platform)
	total := p.Add(fee)

	return Split{
		Total:    total.InexactFloat64(),
		Seller:   seller.InexactFloat64(),
		Platform: platform.InexactFloat64(),
		Delivery: fee.InexactFloat64(),

		TotalKobo:    ToKobo(total.InexactFloat64()),
		SellerKobo:   ToKobo(seller.InexactFloat64()),
		PlatformKobo: ToKobo(platform.InexactFloat64()),
		DeliveryKobo: ToKobo(fee.InexactFloat64()),
	}
}

// ToKobo converts a rand amount to integer minor units.
func ToKobo(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromKobo converts integer minor units back to rand.
func FromKobo(kobo int64) float64 {
	return decimal.NewFromInt(kobo).Div(decimal.NewFromInt(100)).InexactFloat64()
}
