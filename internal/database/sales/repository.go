// Package sales provides database operations for purchases.
package sales

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/libraryhub/internal/database"
	"github.com/mrlokans/libraryhub/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSales returns every sale, most recent first, with its book.
func (r *Repository) GetSales(ctx context.Context) ([]entities.Sale, error) {
	var sales []entities.Sale
	err := database.Conn(ctx, r.db).Preload("Book").Order("created_at DESC, id DESC").Find(&sales).Error
	return sales, err
}

// GetSalesForUser returns userID's sales, most recent first.
func (r *Repository) GetSalesForUser(ctx context.Context, userID uint) ([]entities.Sale, error) {
	var sales []entities.Sale
	err := database.Conn(ctx, r.db).Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&sales).Error
	return sales, err
}

func (r *Repository) GetSaleByID(ctx context.Context, id uint) (*entities.Sale, error) {
	var sale entities.Sale
	err := database.Conn(ctx, r.db).Preload("Book").First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *Repository) CreateSale(ctx context.Context, sale *entities.Sale) error {
	return database.Conn(ctx, r.db).Omit("Book").Create(sale).Error
}

// UpdateSaleStatus sets the remote status of a sale and returns the stored row.
func (r *Repository) UpdateSaleStatus(ctx context.Context, id uint, status string) (*entities.Sale, error) {
	result := database.Conn(ctx, r.db).Model(&entities.Sale{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetSaleByID(ctx, id)
}

func (r *Repository) DeleteSale(ctx context.Context, id uint) error {
	result := database.Conn(ctx, r.db).Delete(&entities.Sale{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
