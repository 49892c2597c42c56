package service

import (
	"context"
	"errors"
	"testing"

	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/model"
	"github.com/SimelweN/rebooked-reads-sub008/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBankingFixture(t *testing.T) (BankingService, *fakePaystack, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	paystack := &fakePaystack{}
	svc := NewBankingService(
		paystack,
		repository.NewSubaccountRepository(db),
		repository.NewBookRepository(db),
		repository.NewProfileRepository(db),
	)
	return svc, paystack, db
}

var testDetails = dto.BankingDetails{
	BusinessName:  "Sipho's Books",
	BankName:      "Capitec",
	BankCode:      "470010",
	AccountNumber: "1234567890",
}

func TestSetupBanking_Unauthenticated_NoRemoteCalls(t *testing.T) {
	svc, paystack, _ := newBankingFixture(t)

	result := svc.SetupBanking(context.Background(), "", testDetails)

	assert.False(t, result.Success)
	assert.Equal(t, "User not authenticated", result.Error)
	create, update, resolve, refund := paystack.calls()
	assert.Zero(t, create+update+resolve+refund)
}

func TestSetupBanking_CreatesRecordAndLinksBooks(t *testing.T) {
	svc, _, db := newBankingFixture(t)
	seedBook(t, db, "book-1", "seller-1", 450, 1)
	seedBook(t, db, "book-2", "seller-1", 200, 1)
	seedBook(t, db, "book-other", "seller-2", 99, 1)

	result := svc.SetupBanking(context.Background(), "seller-1", testDetails)

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "ACCT_test", result.SubaccountCode)

	var record model.BankingSubaccount
	require.NoError(t, db.Where("seller_id = ?", "seller-1").First(&record).Error)
	assert.Equal(t, "active", record.Status)
	assert.Equal(t, "ACCT_test", record.SubaccountCode)

	var linked []model.Book
	require.NoError(t, db.Where("seller_id = ?", "seller-1").Find(&linked).Error)
	for _, book := range linked {
		assert.Equal(t, "ACCT_test", book.SubaccountCode)
	}

	var other model.Book
	require.NoError(t, db.Where("id = ?", "book-other").First(&other).Error)
	assert.Empty(t, other.SubaccountCode)
}

func TestSetupBanking_ProviderFailureSurfaced(t *testing.T) {
	svc, paystack, _ := newBankingFixture(t)
	paystack.createErr = errors.New("paystack error 400: invalid bank code")

	result := svc.SetupBanking(context.Background(), "seller-1", testDetails)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "invalid bank code")
}

func TestUpdateBanking_WithoutSetup(t *testing.T) {
	svc, paystack, _ := newBankingFixture(t)

	result := svc.UpdateBanking(context.Background(), "seller-1", testDetails)

	assert.False(t, result.Success)
	assert.Equal(t, "no banking setup to update", result.Error)
	_, update, _, _ := paystack.calls()
	assert.Zero(t, update)
}

func TestUpdateBanking_DoesNotRelinkBooks(t *testing.T) {
	svc, _, db := newBankingFixture(t)
	require.True(t, svc.SetupBanking(context.Background(), "seller-1", testDetails).Success)

	// a listing created after setup, not yet linked
	seedBook(t, db, "book-late", "seller-1", 300, 1)

	updated := testDetails
	updated.AccountNumber = "0987654321"
	result := svc.UpdateBanking(context.Background(), "seller-1", updated)
	require.True(t, result.Success, result.Error)

	var late model.Book
	require.NoError(t, db.Where("id = ?", "book-late").First(&late).Error)
	assert.Empty(t, late.SubaccountCode)

	var record model.BankingSubaccount
	require.NoError(t, db.Where("seller_id = ?", "seller-1").First(&record).Error)
	assert.Equal(t, "0987654321", record.AccountNumber)
}

func TestGetSellerRequirements_Progression(t *testing.T) {
	svc, _, db := newBankingFixture(t)
	ctx := context.Background()

	req, err := svc.GetSellerRequirements(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, req.CompletionPercentage)
	assert.False(t, req.CanReceivePayments)

	// 1/3: banking
	require.True(t, svc.SetupBanking(ctx, "seller-1", testDetails).Success)
	req, err = svc.GetSellerRequirements(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 33.0, req.CompletionPercentage)
	assert.False(t, req.CanReceivePayments)

	// 2/3: pickup address
	require.NoError(t, db.Create(&model.Profile{
		ID: "seller-1", Email: "sipho@example.com", PickupAddress: "12 Church St", PickupCity: "Pretoria", PickupProvince: "Gauteng",
	}).Error)
	req, err = svc.GetSellerRequirements(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 67.0, req.CompletionPercentage)
	assert.False(t, req.CanReceivePayments)

	// 3/3: an active listing
	seedBook(t, db, "book-1", "seller-1", 450, 1)
	req, err = svc.GetSellerRequirements(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, req.CompletionPercentage)
	assert.True(t, req.CanReceivePayments)
	assert.True(t, req.HasBankingSetup)
	assert.True(t, req.HasPickupAddress)
	assert.True(t, req.HasActiveListings)
}

func TestValidateAccountNumber(t *testing.T) {
	svc, paystack, _ := newBankingFixture(t)

	result := svc.ValidateAccountNumber(context.Background(), "1234567890", "470010")
	assert.True(t, result.Valid)
	assert.Equal(t, "S NDLOVU", result.AccountName)

	paystack.resolveErr = errors.New("timeout")
	result = svc.ValidateAccountNumber(context.Background(), "1234567890", "470010")
	assert.False(t, result.Valid)
	assert.Equal(t, "Validation service unavailable", result.Error)
}

func TestGetBankingDetails_Masking(t *testing.T) {
	svc, _, _ := newBankingFixture(t)
	ctx := context.Background()
	require.True(t, svc.SetupBanking(ctx, "seller-1", testDetails).Success)

	masked, err := svc.GetBankingDetails(ctx, "seller-1", true)
	require.NoError(t, err)
	assert.Equal(t, "******7890", masked.AccountNumber)

	full, err := svc.GetBankingDetails(ctx, "seller-1", false)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", full.AccountNumber)
}

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "******7890", MaskAccountNumber("1234567890"))
	assert.Equal(t, "123", MaskAccountNumber("123"))
}
