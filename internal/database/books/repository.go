// Package books provides database operations for the catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	rows, err := repo.SearchBooks(ctx, "dune")
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/libraryhub/internal/database"
	"github.com/mrlokans/libraryhub/internal/entities"
)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBooks returns the whole catalog ordered by title.
func (r *Repository) GetBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := database.Conn(ctx, r.db).Order("title ASC, id ASC").Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := database.Conn(ctx, r.db).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindBookByISBN retrieves a book by ISBN.
func (r *Repository) FindBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	err := database.Conn(ctx, r.db).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// SearchBooks matches query against title, author, ISBN and barcode, case-insensitively.
func (r *Repository) SearchBooks(ctx context.Context, query string) ([]entities.Book, error) {
	var books []entities.Book
	searchPattern := "%" + query + "%"
	err := database.Conn(ctx, r.db).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?) OR isbn LIKE ? OR barcode LIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern).
		Order("title ASC, id ASC").
		Find(&books).Error
	return books, err
}

// CreateBook inserts book and fills in its ID.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return database.Conn(ctx, r.db).Create(book).Error
}

// UpdateBook applies column updates and returns the stored row.
func (r *Repository) UpdateBook(ctx context.Context, id uint, columns map[string]any) (*entities.Book, error) {
	db := database.Conn(ctx, r.db)
	if len(columns) > 0 {
		result := db.Model(&entities.Book{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetBookByID(ctx, id)
}

// DeleteBook removes a book. Deleting a missing book returns gorm.ErrRecordNotFound.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	result := database.Conn(ctx, r.db).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
