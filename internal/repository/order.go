package repository

import (
	"context"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindByReference(ctx context.Context, reference string) (*model.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error)
	FindPendingBySeller(ctx context.Context, sellerID string) ([]*model.Order, error)
	MarkPaid(ctx context.Context, reference string) (*model.Order, error)
	MarkCommitted(ctx context.Context, tx *gorm.DB, orderID string) error
	AdvanceStatus(ctx context.Context, orderID string, from []string, to string) error
	Cancel(ctx context.Context, tx *gorm.DB, orderID string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByReference(ctx context.Context, reference string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("payment_ref = ?", reference).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// FindPendingBySeller returns paid, uncommitted orders: the sales a seller
// still has to commit to or decline.
func (r *orderRepoImpl) FindPendingBySeller(ctx context.Context, sellerID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Where("status = ?", string(model.OrderPending)).
		Where("paid_at IS NOT NULL").
		Where("committed_at IS NULL").
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) MarkPaid(ctx context.Context, reference string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&order).
			Where("payment_ref = ?", reference).
			Where("paid_at IS NULL").
			Updates(map[string]interface{}{
				"paid_at":    time.Now(),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("payment_ref = ?", reference).First(&order).Error
	})

	return &order, err
}

func (r *orderRepoImpl) MarkCommitted(ctx context.Context, tx *gorm.DB, orderID string) error {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Where("status = ?", string(model.OrderPending)).
		Where("committed_at IS NULL").
		Updates(map[string]interface{}{
			"committed_at": time.Now(),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// order exists in a state the transition no longer applies to
		return fault.ErrConflict
	}

	return nil
}

// AdvanceStatus moves an order to a new status only when its current status
// is in the allowed set, so terminal states stay terminal.
func (r *orderRepoImpl) AdvanceStatus(ctx context.Context, orderID string, from []string, to string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where(`
			id = ?
			AND status IN ?
		`,
			orderID,
			from,
		).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fault.ErrConflict
	}

	return nil
}

func (r *orderRepoImpl) Cancel(ctx context.Context, tx *gorm.DB, orderID string) error {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Where("status IN ?", []string{string(model.OrderPending), string(model.OrderShipped)}).
		Updates(map[string]interface{}{
			"status":     string(model.OrderCancelled),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fault.ErrConflict
	}

	return nil
}
