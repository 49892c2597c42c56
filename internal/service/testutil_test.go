package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	// one :memory: database per pooled connection otherwise
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&model.Book{},
		&model.Order{},
		&model.OrderItem{},
		&model.Profile{},
		&model.BankingSubaccount{},
		&model.ContactMessage{},
		&model.Report{},
		&model.SuspendedUser{},
	); err != nil {
		t.Fatal(err)
	}
	return db
}

// fakePaystack satisfies client.PaystackClient without the network. Each
// method counts its calls; refundGate, when set, blocks CreateRefund until
// closed so tests can hold a workflow in flight.
type fakePaystack struct {
	mu sync.Mutex

	createCalls  int
	updateCalls  int
	resolveCalls int
	refundCalls  int
	initCalls    int

	createErr  error
	updateErr  error
	resolveErr error
	refundErr  error

	refundGate chan struct{}

	subCode      string
	verifyStatus string
}

func (f *fakePaystack) calls() (create, update, resolve, refund int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.updateCalls, f.resolveCalls, f.refundCalls
}

func (f *fakePaystack) CreateSubaccount(_ context.Context, businessName, bankCode, accountNumber string, _ float64) (*model.PaystackSubaccount, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	code := f.subCode
	if code == "" {
		code = "ACCT_test"
	}
	return &model.PaystackSubaccount{
		SubaccountCode: code,
		BusinessName:   businessName,
		SettlementBank: bankCode,
		AccountNumber:  accountNumber,
		Active:         true,
	}, nil
}

func (f *fakePaystack) UpdateSubaccount(_ context.Context, subaccountCode, businessName, bankCode, accountNumber string) (*model.PaystackSubaccount, error) {
	f.mu.Lock()
	f.updateCalls++
	f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &model.PaystackSubaccount{
		SubaccountCode: subaccountCode,
		BusinessName:   businessName,
		SettlementBank: bankCode,
		AccountNumber:  accountNumber,
		Active:         true,
	}, nil
}

func (f *fakePaystack) ResolveAccount(_ context.Context, accountNumber, _ string) (*model.PaystackResolvedAccount, error) {
	f.mu.Lock()
	f.resolveCalls++
	f.mu.Unlock()
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return &model.PaystackResolvedAccount{AccountNumber: accountNumber, AccountName: "S NDLOVU"}, nil
}

func (f *fakePaystack) InitializeTransaction(_ context.Context, _ string, _ int64, reference, _ string) (*model.PaystackAuthorization, error) {
	f.mu.Lock()
	f.initCalls++
	f.mu.Unlock()
	return &model.PaystackAuthorization{
		AuthorizationURL: "https://checkout.paystack.test/" + reference,
		Reference:        reference,
	}, nil
}

func (f *fakePaystack) VerifyTransaction(_ context.Context, reference string) (*model.PaystackTransaction, error) {
	status := f.verifyStatus
	if status == "" {
		status = "success"
	}
	return &model.PaystackTransaction{Status: status, Reference: reference, Currency: "ZAR"}, nil
}

func (f *fakePaystack) CreateRefund(_ context.Context, reference string, amountKobo int64) (*model.PaystackRefund, error) {
	if f.refundGate != nil {
		<-f.refundGate
	}
	f.mu.Lock()
	f.refundCalls++
	f.mu.Unlock()
	if f.refundErr != nil {
		return nil, f.refundErr
	}
	return &model.PaystackRefund{Status: "processed", Transaction: reference, Amount: amountKobo}, nil
}

func (f *fakePaystack) CreateTransferRecipient(_ context.Context, name, bankCode, accountNumber string) (*model.PaystackRecipient, error) {
	return &model.PaystackRecipient{RecipientCode: "RCP_test", Type: "basa", Name: name}, nil
}

func (f *fakePaystack) InitiateTransfer(_ context.Context, recipientCode string, amountKobo int64, _ string) (*model.PaystackTransfer, error) {
	return &model.PaystackTransfer{TransferCode: "TRF_test", Status: "pending", Amount: amountKobo}, nil
}

func sleepBriefly() {
	time.Sleep(time.Millisecond)
}

func seedBook(t *testing.T, db *gorm.DB, id, sellerID string, price float64, available int) *model.Book {
	t.Helper()
	book := &model.Book{
		ID:                id,
		SellerID:          sellerID,
		Title:             "Engineering Mathematics",
		Price:             price,
		InitialQuantity:   available,
		AvailableQuantity: available,
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatal(err)
	}
	return book
}

func seedPaidOrder(t *testing.T, db *gorm.DB, orderID, buyerID, sellerID, bookID string, price float64) *model.Order {
	t.Helper()
	now := time.Now()
	order := &model.Order{
		ID:          orderID,
		BuyerID:     buyerID,
		SellerID:    sellerID,
		Status:      string(model.OrderPending),
		TotalAmount: price,
		PaymentRef:  "ref-" + orderID,
		PaidAt:      &now,
		ExpiresAt:   now.Add(CommitWindow),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatal(err)
	}
	item := &model.OrderItem{OrderID: orderID, BookID: bookID, Title: "Engineering Mathematics", Subtotal: price}
	if err := db.Create(item).Error; err != nil {
		t.Fatal(err)
	}
	return order
}
