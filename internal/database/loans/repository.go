// Package loans provides database operations for loans and renewals.
package loans

import (
	"context"
	"time"

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

// GetLoans returns every loan, most recent first, with its book.
func (r *Repository) GetLoans(ctx context.Context) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := database.Conn(ctx, r.db).Preload("Book").Order("loaned_at DESC, id DESC").Find(&loans).Error
	return loans, err
}

func (r *Repository) GetLoansForUser(ctx context.Context, userID uint) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := database.Conn(ctx, r.db).Preload("Book").
		Where("user_id = ?", userID).
		Order("loaned_at DESC, id DESC").
		Find(&loans).Error
	return loans, err
}

func (r *Repository) GetLoanByID(ctx context.Context, id uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := database.Conn(ctx, r.db).Preload("Book").First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// CountOpenLoans counts userID's confirmed loans that have not been returned.
func (r *Repository) CountOpenLoans(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entities.Loan{}).
		Where("user_id = ? AND status = ?", userID, entities.LoanStatusConfirmed).
		Count(&count).Error
	return count, err
}

// GetOpenLoansDueBefore returns confirmed loans due at or before t, soonest first.
func (r *Repository) GetOpenLoansDueBefore(ctx context.Context, t time.Time) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := database.Conn(ctx, r.db).Preload("Book").
		Where("status = ? AND due_at <= ?", entities.LoanStatusConfirmed, t).
		Order("due_at ASC").
		Find(&loans).Error
	return loans, err
}

func (r *Repository) CreateLoan(ctx context.Context, loan *entities.Loan) error {
	return database.Conn(ctx, r.db).Omit("Book").Create(loan).Error
}

// SaveLoan writes every column of loan.
func (r *Repository) SaveLoan(ctx context.Context, loan *entities.Loan) error {
	return database.Conn(ctx, r.db).Omit("Book").Save(loan).Error
}
