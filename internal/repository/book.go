package repository

import (
	"context"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, bookID string) (*model.Book, error)
	FindMany(ctx context.Context, bookIDs []string) ([]*model.Book, error)
	FindBySeller(ctx context.Context, sellerID string) ([]*model.Book, error)
	CountActiveBySeller(ctx context.Context, sellerID string) (int64, error)
	LinkSubaccount(ctx context.Context, sellerID, subaccountCode string) error
	MarkSold(ctx context.Context, tx *gorm.DB, bookID string) error
	Relist(ctx context.Context, tx *gorm.DB, bookID string) error
	DeleteMany(ctx context.Context, bookIDs []string) (int64, error)
}

type bookRepoImpl struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepoImpl{
		db: db,
	}
}

func (r *bookRepoImpl) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepoImpl) FindByID(ctx context.Context, bookID string) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).
		Where("id = ?", bookID).
		First(&book).Error
	if err != nil {
		return nil, err
	}

	return &book, nil
}

func (r *bookRepoImpl) FindMany(ctx context.Context, bookIDs []string) ([]*model.Book, error) {
	var books []*model.Book
	err := r.db.WithContext(ctx).
		Where("id IN ?", bookIDs).
		Find(&books).
		Error
	if err != nil {
		return nil, err
	}

	return books, nil
}

func (r *bookRepoImpl) FindBySeller(ctx context.Context, sellerID string) ([]*model.Book, error) {
	var books []*model.Book
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&books).
		Error
	if err != nil {
		return nil, err
	}

	return books, nil
}

func (r *bookRepoImpl) CountActiveBySeller(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("seller_id = ?", sellerID).
		Where("sold = ?", false).
		Where("available_quantity > 0").
		Count(&count).Error

	return count, err
}

// LinkSubaccount back-fills the subaccount code onto books listed before the
// seller finished banking setup, so future splits route correctly.
func (r *bookRepoImpl) LinkSubaccount(ctx context.Context, sellerID, subaccountCode string) error {
	return r.db.WithContext(ctx).Model(&model.Book{}).
		Where("seller_id = ?", sellerID).
		Updates(map[string]interface{}{
			"subaccount_code": subaccountCode,
			"updated_at":      time.Now(),
		}).Error
}

func (r *bookRepoImpl) MarkSold(ctx context.Context, tx *gorm.DB, bookID string) error {
	result := tx.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", bookID).
		Where("available_quantity > 0").
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity - 1"),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	// sold = true only once the last copy is gone.
	return tx.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", bookID).
		Where("available_quantity = 0").
		Update("sold", true).Error
}

func (r *bookRepoImpl) Relist(ctx context.Context, tx *gorm.DB, bookID string) error {
	result := tx.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", bookID).
		Where("available_quantity < initial_quantity").
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity + 1"),
			"sold":               false,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *bookRepoImpl) DeleteMany(ctx context.Context, bookIDs []string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id IN ?", bookIDs).
		Delete(&model.Book{})

	return result.RowsAffected, result.Error
}
