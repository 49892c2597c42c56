package repository

import (
	"context"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubaccountRepository interface {
	Upsert(ctx context.Context, sub *model.BankingSubaccount) error
	GetBySeller(ctx context.Context, sellerID string) (*model.BankingSubaccount, error)
	HasActive(ctx context.Context, sellerID string) (bool, error)
}

type subaccountRepoImpl struct {
	db *gorm.DB
}

func NewSubaccountRepository(db *gorm.DB) SubaccountRepository {
	return &subaccountRepoImpl{
		db: db,
	}
}

func (r *subaccountRepoImpl) Upsert(ctx context.Context, sub *model.BankingSubaccount) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "seller_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"business_name":   sub.BusinessName,
			"bank_name":       sub.BankName,
			"bank_code":       sub.BankCode,
			"account_number":  sub.AccountNumber,
			"subaccount_code": sub.SubaccountCode,
			"status":          sub.Status,
			"updated_at":      time.Now(),
		}),
	}).Create(sub).Error
}

func (r *subaccountRepoImpl) GetBySeller(ctx context.Context, sellerID string) (*model.BankingSubaccount, error) {
	var sub model.BankingSubaccount
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subaccountRepoImpl) HasActive(ctx context.Context, sellerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BankingSubaccount{}).
		Where("seller_id = ?", sellerID).
		Where("status = ?", "active").
		Count(&count).Error

	return count > 0, err
}
