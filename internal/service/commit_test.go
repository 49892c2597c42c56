package service

import (
	"context"
	"sync"
	"testing"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"
	"github.com/SimelweN/rebooked-reads-sub008/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommitFixture(t *testing.T) (CommitService, *fakePaystack, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	paystack := &fakePaystack{}
	svc := NewCommitService(
		db,
		paystack,
		repository.NewOrderRepository(db),
		repository.NewBookRepository(db),
		repository.NewProfileRepository(db),
	)
	return svc, paystack, db
}

func TestPendingCommits_ProjectsOrderAndBook(t *testing.T) {
	svc, _, db := newCommitFixture(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Profile{
		ID: "buyer-1", FirstName: "Thabo", LastName: "Mokoena", Email: "thabo@example.com",
	}).Error)
	seedBook(t, db, "book-1", "seller-1", 450, 1)
	order := seedPaidOrder(t, db, "order-1", "buyer-1", "seller-1", "book-1", 450)

	commits, err := svc.PendingCommits(ctx, "seller-1")
	require.NoError(t, err)
	require.Len(t, commits, 1)

	c := commits[0]
	assert.Equal(t, "order-1", c.OrderID)
	assert.Equal(t, "book-1", c.BookID)
	assert.Equal(t, 450.0, c.Price)
	assert.Equal(t, "Thabo Mokoena", c.BuyerName)
	assert.Equal(t, "thabo@example.com", c.BuyerEmail)
	assert.Equal(t, 405.0, c.SellerEarnings)
	assert.Equal(t, 45.0, c.PlatformFee)
	assert.WithinDuration(t, order.ExpiresAt, c.ExpiresAt, 0)
}

func TestPendingCommits_Unauthenticated(t *testing.T) {
	svc, _, _ := newCommitFixture(t)
	_, err := svc.PendingCommits(context.Background(), "")
	assert.EqualError(t, err, "User not authenticated")
}

func TestCommitSale_MarksOrderAndRefreshesList(t *testing.T) {
	svc, _, db := newCommitFixture(t)
	ctx := context.Background()
	seedBook(t, db, "book-1", "seller-1", 450, 1)
	seedPaidOrder(t, db, "order-1", "buyer-1", "seller-1", "book-1", 450)

	commits, err := svc.CommitSale(ctx, "seller-1", "book-1")
	require.NoError(t, err)
	assert.Empty(t, commits)

	var order model.Order
	require.NoError(t, db.Where("id = ?", "order-1").First(&order).Error)
	assert.NotNil(t, order.CommittedAt)
	assert.Equal(t, string(model.OrderPending), order.Status)
}

func TestCommitSale_NoPendingSale(t *testing.T) {
	svc, _, _ := newCommitFixture(t)

	_, err := svc.CommitSale(context.Background(), "seller-1", "missing-book")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pending sale")

	// guard released after the failure: the retry reaches the store again
	_, err = svc.CommitSale(context.Background(), "seller-1", "missing-book")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pending sale")
}

func TestDeclineSale_RefundsCancelsAndRelists(t *testing.T) {
	svc, paystack, db := newCommitFixture(t)
	ctx := context.Background()
	seedBook(t, db, "book-1", "seller-1", 450, 1)
	seedPaidOrder(t, db, "order-1", "buyer-1", "seller-1", "book-1", 450)

	// simulate the copy having been taken off the shelf at payment time
	require.NoError(t, db.Model(&model.Book{}).Where("id = ?", "book-1").
		Updates(map[string]interface{}{"available_quantity": 0, "sold": true}).Error)

	commits, err := svc.DeclineSale(ctx, "seller-1", "book-1")
	require.NoError(t, err)
	assert.Empty(t, commits)

	_, _, _, refunds := paystack.calls()
	assert.Equal(t, 1, refunds)

	var order model.Order
	require.NoError(t, db.Where("id = ?", "order-1").First(&order).Error)
	assert.Equal(t, string(model.OrderCancelled), order.Status)

	var book model.Book
	require.NoError(t, db.Where("id = ?", "book-1").First(&book).Error)
	assert.False(t, book.Sold)
	assert.Equal(t, 1, book.AvailableQuantity)
}

// A duplicate same-intent call while the first is in flight is a guarded
// no-op, and the guard is released once the first call finishes.
func TestDeclineSale_InFlightGuard(t *testing.T) {
	svc, paystack, db := newCommitFixture(t)
	ctx := context.Background()
	seedBook(t, db, "book-1", "seller-1", 450, 1)
	seedPaidOrder(t, db, "order-1", "buyer-1", "seller-1", "book-1", 450)

	gate := make(chan struct{})
	paystack.refundGate = gate

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.DeclineSale(ctx, "seller-1", "book-1")
	}()

	// wait until the first call is parked inside the refund
	waitForInflight(t, svc, "decline", "book-1")

	// duplicate decline while the first is in flight: no-op, no second refund
	commits, err := svc.DeclineSale(ctx, "seller-1", "book-1")
	require.NoError(t, err)
	assert.Nil(t, commits)

	close(gate)
	wg.Wait()
	require.NoError(t, firstErr)

	_, _, _, refunds := paystack.calls()
	assert.Equal(t, 1, refunds)

	// guard released: a fresh call reaches the store (and finds nothing left)
	_, err = svc.DeclineSale(ctx, "seller-1", "book-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pending sale")
}

// seedPaidTwoBookOrder stores one paid order carrying both books, with the
// copies already off the shelf the way VerifyPayment leaves them.
func seedPaidTwoBookOrder(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedBook(t, db, "book-1", "seller-1", 450, 1)
	seedBook(t, db, "book-2", "seller-1", 111, 1)
	order := seedPaidOrder(t, db, "order-1", "buyer-1", "seller-1", "book-1", 561)
	require.NoError(t, db.Create(&model.OrderItem{
		OrderID: order.ID, BookID: "book-2", Title: "Engineering Physics", Subtotal: 111,
	}).Error)
	require.NoError(t, db.Model(&model.Book{}).Where("id IN ?", []string{"book-1", "book-2"}).
		Updates(map[string]interface{}{"available_quantity": 0, "sold": true}).Error)
}

func TestDeclineSale_MultiBookOrderRelistsEverySibling(t *testing.T) {
	svc, paystack, db := newCommitFixture(t)
	ctx := context.Background()
	seedPaidTwoBookOrder(t, db)

	// decline addressed via book-1 decides for the whole order
	commits, err := svc.DeclineSale(ctx, "seller-1", "book-1")
	require.NoError(t, err)
	assert.Empty(t, commits)

	_, _, _, refunds := paystack.calls()
	assert.Equal(t, 1, refunds)

	var order model.Order
	require.NoError(t, db.Where("id = ?", "order-1").First(&order).Error)
	assert.Equal(t, string(model.OrderCancelled), order.Status)

	// the buyer was refunded in full, so both books go back on the shelf
	for _, id := range []string{"book-1", "book-2"} {
		var book model.Book
		require.NoError(t, db.Where("id = ?", id).First(&book).Error)
		assert.False(t, book.Sold, id)
		assert.Equal(t, 1, book.AvailableQuantity, id)
	}
}

func TestCommitSale_MultiBookOrderIsOneDecision(t *testing.T) {
	svc, _, db := newCommitFixture(t)
	ctx := context.Background()
	seedPaidTwoBookOrder(t, db)

	before, err := svc.PendingCommits(ctx, "seller-1")
	require.NoError(t, err)
	require.Len(t, before, 2)

	// committing via either book confirms the order as a whole
	commits, err := svc.CommitSale(ctx, "seller-1", "book-2")
	require.NoError(t, err)
	assert.Empty(t, commits)

	var order model.Order
	require.NoError(t, db.Where("id = ?", "order-1").First(&order).Error)
	assert.NotNil(t, order.CommittedAt)
}

// Declining sibling books of the same order concurrently must not refund the
// buyer twice: the order-level guard turns the second call into a no-op.
func TestDeclineSale_SiblingBooksShareOneRefund(t *testing.T) {
	svc, paystack, db := newCommitFixture(t)
	ctx := context.Background()
	seedPaidTwoBookOrder(t, db)

	gate := make(chan struct{})
	paystack.refundGate = gate

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.DeclineSale(ctx, "seller-1", "book-1")
	}()

	// first decline is past the order lookup, parked inside the refund
	waitForInflight(t, svc, "decline", "order:order-1")

	commits, err := svc.DeclineSale(ctx, "seller-1", "book-2")
	require.NoError(t, err)
	assert.Nil(t, commits)

	close(gate)
	wg.Wait()
	require.NoError(t, firstErr)

	_, _, _, refunds := paystack.calls()
	assert.Equal(t, 1, refunds)
}

func TestCommitAndDecline_DistinctIntentsNotMutuallyGuarded(t *testing.T) {
	svc, _, _ := newCommitFixture(t)
	impl := svc.(*commitServiceImpl)

	assert.True(t, impl.begin("commit", "book-1"))
	// decline intent is guarded independently of commit
	assert.True(t, impl.begin("decline", "book-1"))
	// but a duplicate commit is not
	assert.False(t, impl.begin("commit", "book-1"))

	impl.release("commit", "book-1")
	assert.True(t, impl.begin("commit", "book-1"))
	impl.release("commit", "book-1")
	impl.release("decline", "book-1")
}

func waitForInflight(t *testing.T, svc CommitService, intent, bookID string) {
	t.Helper()
	impl := svc.(*commitServiceImpl)
	for i := 0; i < 1000; i++ {
		impl.mu.Lock()
		_, busy := impl.inflight[intent+":"+bookID]
		impl.mu.Unlock()
		if busy {
			return
		}
		sleepBriefly()
	}
	t.Fatal("workflow never entered flight")
}
