package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/client"
	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/repository"

	"gorm.io/gorm"
)

// CommitWindow is how long a seller has to confirm a paid sale before the
// store may expire it. Expiry is surfaced on pending commits but enforced by
// the store, not by this service.
const CommitWindow = 48 * time.Hour

type CommitService interface {
	PendingCommits(ctx context.Context, sellerID string) ([]dto.PendingCommit, error)
	CommitSale(ctx context.Context, sellerID, bookID string) ([]dto.PendingCommit, error)
	DeclineSale(ctx context.Context, sellerID, bookID string) ([]dto.PendingCommit, error)
}

type commitServiceImpl struct {
	db             *gorm.DB
	paystackClient client.PaystackClient
	orderRepo      repository.OrderRepository
	bookRepo       repository.BookRepository
	profileRepo    repository.ProfileRepository

	// in-flight guard: one commit OR one decline per book at a time, plus an
	// order-level key once the order is known, so sibling books of one order
	// cannot run the same decision twice. Same-intent duplicates are no-ops;
	// commit vs decline on the same book is not defended here, the store's
	// guarded updates arbitrate that race.
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewCommitService(
	db *gorm.DB,
	paystackClient client.PaystackClient,
	orderRepo repository.OrderRepository,
	bookRepo repository.BookRepository,
	profileRepo repository.ProfileRepository,
) CommitService {
	return &commitServiceImpl{
		db:             db,
		paystackClient: paystackClient,
		orderRepo:      orderRepo,
		bookRepo:       bookRepo,
		profileRepo:    profileRepo,
		inflight:       make(map[string]struct{}),
	}
}

func (s *commitServiceImpl) begin(intent, bookID string) bool {
	key := intent + ":" + bookID
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *commitServiceImpl) release(intent, bookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, intent+":"+bookID)
}

// PendingCommits projects each paid, unconfirmed sale for the seller: order
// and book joined, buyer contact attached, earnings precomputed.
func (s *commitServiceImpl) PendingCommits(ctx context.Context, sellerID string) ([]dto.PendingCommit, error) {
	if sellerID == "" {
		return nil, fault.ErrNotAuthenticated
	}

	orders, err := s.orderRepo.FindPendingBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}

	commits := make([]dto.PendingCommit, 0, len(orders))
	for _, order := range orders {
		items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("get order items: %w", err)
		}

		buyerName, buyerEmail := "", ""
		if buyer, err := s.profileRepo.Get(ctx, order.BuyerID); err == nil {
			buyerName = DisplayName(buyer)
			buyerEmail = buyer.Email
		} else {
			// buyer enrichment is best-effort
			log.Println("fetch buyer profile:", err)
		}

		for _, item := range items {
			split := CalculateSplit(item.Subtotal, order.DeliveryFee)
			commits = append(commits, dto.PendingCommit{
				OrderID:        order.ID,
				BookID:         item.BookID,
				Title:          item.Title,
				Price:          item.Subtotal,
				BuyerName:      buyerName,
				BuyerEmail:     buyerEmail,
				SellerEarnings: split.Seller,
				PlatformFee:    split.Platform,
				ExpiresAt:      order.ExpiresAt,
			})
		}
	}

	return commits, nil
}

// CommitSale confirms the seller will fulfil the sale for bookID and returns
// the refreshed pending list. The decision is order-scoped: the order was paid
// as one Paystack transaction, so confirming via any of its books commits the
// whole order and every sibling item leaves the pending list with it. A second
// commit for the same book or order while one is in flight is a guarded no-op.
// Errors propagate to the caller after normalization so the HTTP layer can
// both notify and react.
func (s *commitServiceImpl) CommitSale(ctx context.Context, sellerID, bookID string) ([]dto.PendingCommit, error) {
	if sellerID == "" {
		return nil, fault.ErrNotAuthenticated
	}
	if !s.begin("commit", bookID) {
		return nil, nil
	}
	defer s.release("commit", bookID)

	order, err := s.findPendingOrderForBook(ctx, sellerID, bookID)
	if err != nil {
		return nil, err
	}

	// a sibling book of the same order may be in flight under its own key
	if !s.begin("commit", "order:"+order.ID) {
		return nil, nil
	}
	defer s.release("commit", "order:"+order.ID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.MarkCommitted(ctx, tx, order.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}

	// wholesale refresh, no incremental patching
	return s.PendingCommits(ctx, sellerID)
}

// DeclineSale refuses the pending sale. Like CommitSale the decision is
// order-scoped: the buyer paid once for the whole order, so the refund is
// full, the order is cancelled, and every book in it goes back on the shelf,
// not just the one the seller clicked.
func (s *commitServiceImpl) DeclineSale(ctx context.Context, sellerID, bookID string) ([]dto.PendingCommit, error) {
	if sellerID == "" {
		return nil, fault.ErrNotAuthenticated
	}
	if !s.begin("decline", bookID) {
		return nil, nil
	}
	defer s.release("decline", bookID)

	order, err := s.findPendingOrderForBook(ctx, sellerID, bookID)
	if err != nil {
		return nil, err
	}

	// a sibling book of the same order may be in flight under its own key
	if !s.begin("decline", "order:"+order.ID) {
		return nil, nil
	}
	defer s.release("decline", "order:"+order.ID)

	items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	if _, err := s.paystackClient.CreateRefund(ctx, order.PaymentRef, 0); err != nil {
		return nil, fmt.Errorf("refund buyer: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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
	if err != nil {
		return nil, err
	}

	return s.PendingCommits(ctx, sellerID)
}

func (s *commitServiceImpl) findPendingOrderForBook(ctx context.Context, sellerID, bookID string) (*orderRef, error) {
	orders, err := s.orderRepo.FindPendingBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}

	for _, order := range orders {
		items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("get order items: %w", err)
		}
		for _, item := range items {
			if item.BookID == bookID {
				return &orderRef{ID: order.ID, PaymentRef: order.PaymentRef}, nil
			}
		}
	}

	return nil, fmt.Errorf("no pending sale for book %s: %w", bookID, fault.ErrNotFound)
}

type orderRef struct {
	ID         string
	PaymentRef string
}
