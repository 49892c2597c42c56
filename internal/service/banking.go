package service

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/SimelweN/rebooked-reads-sub008/internal/client"
	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/model"
	"github.com/SimelweN/rebooked-reads-sub008/internal/repository"

	"gorm.io/gorm"
)

type BankingService interface {
	SetupBanking(ctx context.Context, sellerID string, details dto.BankingDetails) dto.BankingResult
	UpdateBanking(ctx context.Context, sellerID string, details dto.BankingDetails) dto.BankingResult
	GetBankingDetails(ctx context.Context, sellerID string, masked bool) (*model.BankingSubaccount, error)
	GetSellerRequirements(ctx context.Context, sellerID string) (*dto.SellerRequirements, error)
	ValidateAccountNumber(ctx context.Context, accountNumber, bankCode string) dto.AccountValidation
}

type bankingServiceImpl struct {
	paystackClient client.PaystackClient
	subaccountRepo repository.SubaccountRepository
	bookRepo       repository.BookRepository
	profileRepo    repository.ProfileRepository
}

func NewBankingService(
	paystackClient client.PaystackClient,
	subaccountRepo repository.SubaccountRepository,
	bookRepo repository.BookRepository,
	profileRepo repository.ProfileRepository,
) BankingService {
	return &bankingServiceImpl{
		paystackClient: paystackClient,
		subaccountRepo: subaccountRepo,
		bookRepo:       bookRepo,
		profileRepo:    profileRepo,
	}
}

// SetupBanking creates the seller's Paystack subaccount, stores the record,
// then links the seller's existing listings to the new subaccount code so
// future splits route to it. The linking and the re-read are sequential
// follow-up calls, not one atomic unit.
func (s *bankingServiceImpl) SetupBanking(ctx context.Context, sellerID string, details dto.BankingDetails) dto.BankingResult {
	if sellerID == "" {
		return dto.BankingResult{Success: false, Error: fault.ErrNotAuthenticated.Error()}
	}

	sub, err := s.paystackClient.CreateSubaccount(ctx, details.BusinessName, details.BankCode, details.AccountNumber, CommissionRate*100)
	if err != nil {
		return dto.BankingResult{Success: false, Error: fault.Message(err)}
	}

	record := &model.BankingSubaccount{
		SellerID:       sellerID,
		BusinessName:   details.BusinessName,
		BankName:       details.BankName,
		BankCode:       details.BankCode,
		AccountNumber:  details.AccountNumber,
		SubaccountCode: sub.SubaccountCode,
		Status:         "active",
	}
	if err := s.subaccountRepo.Upsert(ctx, record); err != nil {
		return dto.BankingResult{Success: false, Error: fault.Message(err)}
	}

	if err := s.bookRepo.LinkSubaccount(ctx, sellerID, sub.SubaccountCode); err != nil {
		// Subaccount exists either way; report linking as the failure.
		return dto.BankingResult{Success: false, Error: fault.Message(err)}
	}

	if _, err := s.subaccountRepo.GetBySeller(ctx, sellerID); err != nil {
		log.Println("re-fetch banking record after setup:", err)
	}

	return dto.BankingResult{Success: true, SubaccountCode: sub.SubaccountCode}
}

// UpdateBanking mirrors SetupBanking without the book-linking step.
func (s *bankingServiceImpl) UpdateBanking(ctx context.Context, sellerID string, details dto.BankingDetails) dto.BankingResult {
	if sellerID == "" {
		return dto.BankingResult{Success: false, Error: fault.ErrNotAuthenticated.Error()}
	}

	existing, err := s.subaccountRepo.GetBySeller(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BankingResult{Success: false, Error: "no banking setup to update"}
		}
		return dto.BankingResult{Success: false, Error: fault.Message(err)}
	}

	sub, err := s.paystackClient.UpdateSubaccount(ctx, existing.SubaccountCode, details.BusinessName, details.BankCode, details.AccountNumber)
	if err != nil {
		return dto.BankingResult{Success: false, Error: fault.Message(err)}
	}

	existing.BusinessName = details.BusinessName
	existing.BankName = details.BankName
	existing.BankCode = details.BankCode
	existing.AccountNumber = details.AccountNumber
	existing.SubaccountCode = sub.SubaccountCode
	if err := s.subaccountRepo.Upsert(ctx, existing); err != nil {
		return dto.BankingResult{Success: false, Error: fault.Message(err)}
	}

	return dto.BankingResult{Success: true, SubaccountCode: sub.SubaccountCode}
}

func (s *bankingServiceImpl) GetBankingDetails(ctx context.Context, sellerID string, masked bool) (*model.BankingSubaccount, error) {
	if sellerID == "" {
		return nil, fault.ErrNotAuthenticated
	}

	sub, err := s.subaccountRepo.GetBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if masked {
		clone := *sub
		clone.AccountNumber = MaskAccountNumber(clone.AccountNumber)
		return &clone, nil
	}
	return sub, nil
}

// GetSellerRequirements aggregates the three independent readiness checks a
// seller must pass before payments can route to them.
func (s *bankingServiceImpl) GetSellerRequirements(ctx context.Context, sellerID string) (*dto.SellerRequirements, error) {
	if sellerID == "" {
		return nil, fault.ErrNotAuthenticated
	}

	hasBanking, err := s.subaccountRepo.HasActive(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	hasAddress, err := s.profileRepo.HasPickupAddress(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	activeListings, err := s.bookRepo.CountActiveBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	hasListings := activeListings > 0

	trueFlags := 0
	for _, flag := range []bool{hasBanking, hasAddress, hasListings} {
		if flag {
			trueFlags++
		}
	}

	return &dto.SellerRequirements{
		HasBankingSetup:      hasBanking,
		HasPickupAddress:     hasAddress,
		HasActiveListings:    hasListings,
		CompletionPercentage: math.Round(float64(trueFlags) / 3 * 100),
		CanReceivePayments:   hasBanking && hasAddress && hasListings,
	}, nil
}

// ValidateAccountNumber resolves the account against the bank. Any failure is
// reported as unavailable rather than propagated, so a flaky resolver never
// blocks the banking form.
func (s *bankingServiceImpl) ValidateAccountNumber(ctx context.Context, accountNumber, bankCode string) dto.AccountValidation {
	resolved, err := s.paystackClient.ResolveAccount(ctx, accountNumber, bankCode)
	if err != nil {
		return dto.AccountValidation{Valid: false, Error: "Validation service unavailable"}
	}

	return dto.AccountValidation{Valid: true, AccountName: resolved.AccountName}
}

// MaskAccountNumber hides all but the last four digits for display.
func MaskAccountNumber(accountNumber string) string {
	if len(accountNumber) <= 4 {
		return accountNumber
	}
	masked := make([]byte, len(accountNumber)-4)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked) + accountNumber[len(accountNumber)-4:]
}
