package repository

import (
	"context"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	FindMany(ctx context.Context, userIDs []string) ([]*model.Profile, error)
	HasPickupAddress(ctx context.Context, userID string) (bool, error)
}

type profileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepoImpl{
		db: db,
	}
}

func (r *profileRepoImpl) Get(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepoImpl) FindMany(ctx context.Context, userIDs []string) ([]*model.Profile, error) {
	var profiles []*model.Profile
	err := r.db.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&profiles).
		Error
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepoImpl) HasPickupAddress(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", userID).
		Where("pickup_address <> ''").
		Count(&count).Error

	return count > 0, err
}
