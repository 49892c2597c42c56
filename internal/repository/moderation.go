package repository

import (
	"context"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"

	"gorm.io/gorm"
)

type ModerationRepository interface {
	ListReports(ctx context.Context) ([]*model.Report, error)
	UpdateReportStatus(ctx context.Context, reportID, status string) error
	ListSuspendedUsers(ctx context.Context) ([]*model.SuspendedUser, error)
}

type moderationRepoImpl struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepoImpl{
		db: db,
	}
}

func (r *moderationRepoImpl) ListReports(ctx context.Context) ([]*model.Report, error) {
	var reports []*model.Report
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *moderationRepoImpl) UpdateReportStatus(ctx context.Context, reportID, status string) error {
	result := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":     status,
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

func (r *moderationRepoImpl) ListSuspendedUsers(ctx context.Context) ([]*model.SuspendedUser, error) {
	var users []*model.SuspendedUser
	err := r.db.WithContext(ctx).
		Order("suspended_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}
