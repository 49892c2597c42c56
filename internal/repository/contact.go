package repository

import (
	"context"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context) ([]*model.ContactMessage, error)
	MarkRead(ctx context.Context, messageID string) error
}

type contactRepoImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepoImpl{
		db: db,
	}
}

func (r *contactRepoImpl) Create(ctx context.Context, msg *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactRepoImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	var messages []*model.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *contactRepoImpl) MarkRead(ctx context.Context, messageID string) error {
	result := r.db.WithContext(ctx).Model(&model.ContactMessage{}).
		Where("id = ?", messageID).
		Where("status = ?", "unread").
		Updates(map[string]interface{}{
			"status":     "read",
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
