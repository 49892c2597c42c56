package service

import (
	"context"
	"fmt"

	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/model"
	"github.com/SimelweN/rebooked-reads-sub008/internal/repository"

	"github.com/google/uuid"
)

type BookService interface {
	CreateListing(ctx context.Context, sellerID string, req dto.CreateBookRequest) (*model.Book, error)
	GetBook(ctx context.Context, bookID string) (*model.Book, error)
	SellerBooks(ctx context.Context, sellerID string) ([]*model.Book, error)
	BulkDelete(ctx context.Context, bookIDs []string) (int64, error)
}

type bookServiceImpl struct {
	bookRepo       repository.BookRepository
	subaccountRepo repository.SubaccountRepository
}

func NewBookService(
	bookRepo repository.BookRepository,
	subaccountRepo repository.SubaccountRepository,
) BookService {
	return &bookServiceImpl{
		bookRepo:       bookRepo,
		subaccountRepo: subaccountRepo,
	}
}

func (s *bookServiceImpl) CreateListing(ctx context.Context, sellerID string, req dto.CreateBookRequest) (*model.Book, error) {
	if sellerID == "" {
		return nil, fault.ErrNotAuthenticated
	}
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative")
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	// Listings created before banking setup carry no subaccount code; the
	// setup flow back-fills it later.
	subaccountCode := ""
	if sub, err := s.subaccountRepo.GetBySeller(ctx, sellerID); err == nil {
		subaccountCode = sub.SubaccountCode
	}

	book := &model.Book{
		ID:                uuid.NewString(),
		SellerID:          sellerID,
		Title:             req.Title,
		Author:            req.Author,
		Description:       req.Description,
		Category:          req.Category,
		Condition:         req.Condition,
		Price:             req.Price,
		FrontCover:        req.FrontCover,
		BackCover:         req.BackCover,
		SubaccountCode:    subaccountCode,
		InitialQuantity:   quantity,
		AvailableQuantity: quantity,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("store book in db: %w", err)
	}

	return book, nil
}

func (s *bookServiceImpl) GetBook(ctx context.Context, bookID string) (*model.Book, error) {
	return s.bookRepo.FindByID(ctx, bookID)
}

func (s *bookServiceImpl) SellerBooks(ctx context.Context, sellerID string) ([]*model.Book, error) {
	return s.bookRepo.FindBySeller(ctx, sellerID)
}

func (s *bookServiceImpl) BulkDelete(ctx context.Context, bookIDs []string) (int64, error) {
	if len(bookIDs) == 0 {
		return 0, nil
	}
	return s.bookRepo.DeleteMany(ctx, bookIDs)
}
