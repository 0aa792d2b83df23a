// Package settings provides database operations for system settings.
//
// Each key holds one JSON document.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	err := repo.UpdateSetting(ctx, "business_rules", `{"max_loan_days": 20}`)
package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/libraryhub/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSettings returns every settings row.
func (r *Repository) GetSettings(ctx context.Context) ([]entities.Setting, error) {
	var rows []entities.Setting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error
	return rows, err
}

// GetSetting retrieves a setting by key.
func (r *Repository) GetSetting(ctx context.Context, key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpdateSetting creates or updates a setting.
func (r *Repository) UpdateSetting(ctx context.Context, key, value string) error {
	db := r.db.WithContext(ctx)

	var setting entities.Setting
	result := db.Where("key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			Key:   key,
			Value: value,
		}
		return db.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return db.Save(&setting).Error
}

// DeleteSetting removes a setting by key.
func (r *Repository) DeleteSetting(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.Setting{}).Error
}
