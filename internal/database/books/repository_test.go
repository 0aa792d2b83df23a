package books

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/libraryhub/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func str(s string) *string { return &s }

func TestRepository_CreateAndGet(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := &entities.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Quantity: str("3")}
	require.NoError(t, repo.CreateBook(ctx, book))
	assert.NotZero(t, book.ID)

	got, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "3", *got.Quantity)
	assert.Nil(t, got.Price)
	assert.Equal(t, "available", got.Status)

	byISBN, err := repo.FindBookByISBN(ctx, "9780441013593")
	require.NoError(t, err)
	assert.Equal(t, book.ID, byISBN.ID)
}

func TestRepository_GetBookByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetBookByID(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_SearchBooks(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "Dune", Author: "Frank Herbert"}))
	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "Emma", Author: "Jane Austen", Barcode: "LIB-42"}))

	found, err := repo.SearchBooks(ctx, "herbert")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Dune", found[0].Title)

	found, err = repo.SearchBooks(ctx, "LIB-4")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Emma", found[0].Title)

	all, err := repo.GetBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_UpdateBook(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := &entities.Book{Title: "Old", Author: "A"}
	require.NoError(t, repo.CreateBook(ctx, book))

	updated, err := repo.UpdateBook(ctx, book.ID, map[string]any{"title": "New", "price": str("9.5")})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "A", updated.Author)
	assert.Equal(t, "9.5", *updated.Price)

	_, err = repo.UpdateBook(ctx, 999, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteBook(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := &entities.Book{Title: "Gone"}
	require.NoError(t, repo.CreateBook(ctx, book))

	require.NoError(t, repo.DeleteBook(ctx, book.ID))
	assert.ErrorIs(t, repo.DeleteBook(ctx, book.ID), gorm.ErrRecordNotFound)
}
