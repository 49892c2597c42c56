package model

import "time"

type BookCondition string

const (
	ConditionNew          BookCondition = "New"
	ConditionGood         BookCondition = "Good"
	ConditionBetter       BookCondition = "Better"
	ConditionAverage      BookCondition = "Average"
	ConditionBelowAverage BookCondition = "Below Average"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type Book struct {
	ID          string `gorm:"primaryKey;size:64;not null"`
	SellerID    string `gorm:"size:64;index;not null"`
	Title       string `gorm:"size:255;not null"`
	Author      string `gorm:"size:255"`
	Description string
	Category    string  `gorm:"size:64;index"`
	Condition   string  `gorm:"size:32"`
	Price       float64 `gorm:"not null"` // rand, major units
	FrontCover  string
	BackCover   string
	// Subaccount the seller portion of a sale routes to. Empty until the
	// seller completes banking setup; back-filled by the linking step.
	SubaccountCode    string `gorm:"size:64;index"`
	InitialQuantity   int    `gorm:"not null"`
	AvailableQuantity int    `gorm:"not null"`
	Sold              bool   `gorm:"index;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Order struct {
	ID          string `gorm:"primaryKey;size:64;not null"`
	BuyerID     string `gorm:"size:64;index;not null"`
	SellerID    string `gorm:"size:64;index;not null"`
	Status      string `gorm:"size:32;index;not null"` // pending, shipped, completed, cancelled
	TotalAmount float64
	DeliveryFee float64
	PaymentRef  string `gorm:"size:128;index"`
	PaidAt      *time.Time
	CommittedAt *time.Time
	// Surfaced on pending commits; expiry itself is enforced by the store,
	// not by callers.
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → orders.id
	OrderID string `gorm:"size:64;index;not null"`
	// FK → books.id
	BookID    string  `gorm:"size:64;index;not null"`
	Title     string  `gorm:"size:255"`
	Subtotal  float64 `gorm:"not null"`
	CreatedAt time.Time
}

type Profile struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	FirstName string `gorm:"size:128"`
	LastName  string `gorm:"size:128"`
	// Legacy single name column kept for accounts created before the
	// first/last split.
	Name           string `gorm:"size:255"`
	Email          string `gorm:"size:255;index"`
	PickupAddress  string
	PickupCity     string `gorm:"size:128"`
	PickupProvince string `gorm:"size:64"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type BankingSubaccount struct {
	SellerID      string `gorm:"primaryKey;size:64;not null"`
	BusinessName  string `gorm:"size:255;not null"`
	BankName      string `gorm:"size:128;not null"`
	BankCode      string `gorm:"size:16;not null"`
	AccountNumber string `gorm:"size:32;not null"`
	// Paystack subaccount code, e.g. ACCT_xxxxxxxx.
	SubaccountCode string `gorm:"size:64;uniqueIndex"`
	Status         string `gorm:"size:32;not null"` // pending, active
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ContactMessage struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	Name      string `gorm:"size:255"`
	Email     string `gorm:"size:255"`
	Subject   string `gorm:"size:255"`
	Message   string
	Status    string `gorm:"size:16;index;not null"` // unread, read
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Report struct {
	ID             string `gorm:"primaryKey;size:64;not null"`
	ReporterUserID string `gorm:"size:64;index;not null"`
	ReportedUserID string `gorm:"size:64;index"`
	BookID         string `gorm:"size:64;index"`
	Reason         string
	Status         string `gorm:"size:16;index;not null"` // pending, resolved, dismissed
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SuspendedUser struct {
	UserID      string `gorm:"primaryKey;size:64;not null"`
	Reason      string
	Status      string `gorm:"size:16;index;not null"` // active, suspended, banned
	SuspendedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
