package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/client"
	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/model"
	"github.com/SimelweN/rebooked-reads-sub008/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService interface {
	InitializeCheckout(ctx context.Context, buyerID string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	VerifyPayment(ctx context.Context, reference string) (*model.Order, error)
	UpdateTracking(ctx context.Context, orderID, status string) error
	RefundOrder(ctx context.Context, orderID string) error
	TransferSellerPayout(ctx context.Context, orderID string) (*model.PaystackTransfer, error)
}

type paymentServiceImpl struct {
	db             *gorm.DB
	paystackClient client.PaystackClient
	bookRepo       repository.BookRepository
	orderRepo      repository.OrderRepository
	subaccountRepo repository.SubaccountRepository
}

func NewPaymentService(
	db *gorm.DB,
	paystackClient client.PaystackClient,
	bookRepo repository.BookRepository,
	orderRepo repository.OrderRepository,
	subaccountRepo repository.SubaccountRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:             db,
		paystackClient: paystackClient,
		bookRepo:       bookRepo,
		orderRepo:      orderRepo,
		subaccountRepo: subaccountRepo,
	}
}

// InitializeCheckout prices the basket, asks Paystack for an authorization
// URL routed through the seller's subaccount, and stores the order with its
// items in one transaction. All books must belong to one seller: the commit
// workflow and the payment split are per-seller.
func (s *paymentServiceImpl) InitializeCheckout(ctx context.Context, buyerID string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if buyerID == "" {
		return nil, fault.ErrNotAuthenticated
	}
	if len(req.BookIDs) == 0 {
		return nil, fmt.Errorf("no books in checkout")
	}

	books, err := s.bookRepo.FindMany(ctx, req.BookIDs)
	if err != nil {
		return nil, fmt.Errorf("get books: %w", err)
	}
	if len(books) != len(req.BookIDs) {
		return nil, fmt.Errorf("some books not found")
	}

	sellerID := books[0].SellerID
	subaccountCode := books[0].SubaccountCode
	bookTotal := 0.0
	for _, book := range books {
		if book.SellerID != sellerID {
			return nil, fmt.Errorf("checkout spans multiple sellers")
		}
		if book.Sold || book.AvailableQuantity <= 0 {
			return nil, fmt.Errorf("book %s is no longer available", book.ID)
		}
		bookTotal += book.Price
	}

	split := CalculateSplit(bookTotal, req.DeliveryFee)
	reference := uuid.NewString()

	auth, err := s.paystackClient.InitializeTransaction(ctx, req.BuyerEmail, split.TotalKobo, reference, subaccountCode)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize: %w", err)
	}

	now := time.Now()
	order := &model.Order{
		ID:          uuid.NewString(),
		BuyerID:     buyerID,
		SellerID:    sellerID,
		Status:      string(model.OrderPending),
		TotalAmount: split.Total,
		DeliveryFee: req.DeliveryFee,
		PaymentRef:  auth.Reference,
		ExpiresAt:   now.Add(CommitWindow),
	}

	orderItems := make([]*model.OrderItem, len(books))
	for i, book := range books {
		orderItems[i] = &model.OrderItem{
			OrderID:  order.ID,
			BookID:   book.ID,
			Title:    book.Title,
			Subtotal: book.Price,
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		OrderID:          order.ID,
		Reference:        auth.Reference,
		AuthorizationURL: auth.AuthorizationURL,
	}, nil
}

// VerifyPayment confirms the transaction with Paystack and, on success, marks
// the order paid and takes the sold copies off the shelf. The order stays in
// pending until the seller commits.
func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, reference string) (*model.Order, error) {
	txn, err := s.paystackClient.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("paystack verify: %w", err)
	}
	if txn.Status != "success" {
		return nil, fmt.Errorf("payment not successful: status %s", txn.Status)
	}

	order, err := s.orderRepo.MarkPaid(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := s.bookRepo.MarkSold(ctx, tx, item.BookID); err != nil {
				return fmt.Errorf("mark book %s sold: %w", item.BookID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateTracking advances an order along pending -> shipped -> completed.
// Cancelled and completed are terminal.
func (s *paymentServiceImpl) UpdateTracking(ctx context.Context, orderID, status string) error {
	var from []string
	switch status {
	case string(model.OrderShipped):
		from = []string{string(model.OrderPending)}
	case string(model.OrderCompleted):
		from = []string{string(model.OrderShipped)}
	default:
		return fmt.Errorf("invalid tracking status %q", status)
	}

	if status == string(model.OrderShipped) {
		order, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if order.CommittedAt == nil {
			return fmt.Errorf("order %s not committed by seller", orderID)
		}
	}

	if err := s.orderRepo.AdvanceStatus(ctx, orderID, from, status); err != nil {
		return fmt.Errorf("advance order status: %w", err)
	}
	return nil
}

// RefundOrder refunds the buyer in full, cancels the order and re-lists its
// books.
func (s *paymentServiceImpl) RefundOrder(ctx context.Context, orderID string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}

	if _, err := s.paystackClient.CreateRefund(ctx, order.PaymentRef, 0); err != nil {
		return fmt.Errorf("paystack refund: %w", err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("get order items: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Cancel(ctx, tx, order.ID); err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}
		for _, item := range items {
			if err := s.bookRepo.Relist(ctx, tx, item.BookID); err != nil {
				return fmt.Errorf("relist book %s: %w", item.BookID, err)
			}
		}
		return nil
	})
}

// TransferSellerPayout pays the seller their portion of a completed order via
// a Paystack transfer to a recipient built from their banking record.
func (s *paymentServiceImpl) TransferSellerPayout(ctx context.Context, orderID string) (*model.PaystackTransfer, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.Status != string(model.OrderCompleted) {
		return nil, fmt.Errorf("order %s not completed", orderID)
	}

	sub, err := s.subaccountRepo.GetBySeller(ctx, order.SellerID)
	if err != nil {
		return nil, fmt.Errorf("get seller banking record: %w", err)
	}

	split := CalculateSplit(order.TotalAmount-order.DeliveryFee, order.DeliveryFee)

	recipient, err := s.paystackClient.CreateTransferRecipient(ctx, sub.BusinessName, sub.BankCode, sub.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("create transfer recipient: %w", err)
	}

	transfer, err := s.paystackClient.InitiateTransfer(ctx, recipient.RecipientCode, split.SellerKobo, "Order "+orderID+" payout")
	if err != nil {
		return nil, fmt.Errorf("initiate transfer: %w", err)
	}

	return transfer, nil
}
