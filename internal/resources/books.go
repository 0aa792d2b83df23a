package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/mapping"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/query"
)

type Books struct {
	store    BookStore
	query    *query.Client
	notifier notify.Notifier
}

func NewBooks(store BookStore, q *query.Client, n notify.Notifier) *Books {
	if n == nil {
		n = notify.Discard
	}
	return &Books{store: store, query: q, notifier: n}
}

// List returns the whole catalog.
func (b *Books) List(ctx context.Context) ([]domain.Book, error) {
	return query.Get(ctx, b.query, query.KeyOf(ResourceBooks), b.fetchAll)
}

// Subscribe keeps a live view of the catalog.
func (b *Books) Subscribe(ctx context.Context, listener func(query.State)) *query.Subscription {
	return b.query.Subscribe(ctx, query.KeyOf(ResourceBooks), func(ctx context.Context) (any, error) {
		return b.fetchAll(ctx)
	}, listener)
}

func (b *Books) Get(ctx context.Context, id uint) (domain.Book, error) {
	return query.Get(ctx, b.query, query.KeyOf(ResourceBooks, id), func(ctx context.Context) (domain.Book, error) {
		return b.fetchOne(ctx, id)
	})
}

// Search matches title, author, ISBN or barcode.
func (b *Books) Search(ctx context.Context, q string) ([]domain.Book, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return b.List(ctx)
	}
	return query.Get(ctx, b.query, query.KeyOf(ResourceBooks, "search", q), func(ctx context.Context) ([]domain.Book, error) {
		rows, err := b.store.SearchBooks(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to search books: %w", err)
		}
		return mapping.BooksFromRows(rows), nil
	})
}

// FindByISBN looks the ISBN up remotely, bypassing the cache.
func (b *Books) FindByISBN(ctx context.Context, isbn string) (domain.Book, error) {
	row, err := b.store.FindBookByISBN(ctx, isbn)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Book{}, fmt.Errorf("book with isbn %s: %w", isbn, ErrNotFound)
	}
	if err != nil {
		return domain.Book{}, fmt.Errorf("failed to look up isbn %s: %w", isbn, err)
	}
	return mapping.BookFromRow(*row), nil
}

// Create adds a book to the catalog. A book created without an available count has every copy
// available.
func (b *Books) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	return query.Mutate(ctx, b.query, b.notifier, query.MutationOptions{
		Invalidates:        []string{ResourceBooks},
		SuccessTitle:       "Book created",
		SuccessDescription: fmt.Sprintf("%q was added to the catalog", book.Title),
		ErrorTitle:         "Could not create book",
	}, func(ctx context.Context) (domain.Book, error) {
		return b.create(ctx, book)
	})
}

func (b *Books) create(ctx context.Context, book domain.Book) (domain.Book, error) {
	book.Title = strings.TrimSpace(book.Title)
	if book.Title == "" {
		return domain.Book{}, invalid("title is required")
	}
	if book.Quantity < 0 || book.AvailableQuantity < 0 || book.Price < 0 {
		return domain.Book{}, invalid("quantities and price must not be negative")
	}
	if book.AvailableQuantity == 0 {
		book.AvailableQuantity = book.Quantity
	}
	if book.AvailableQuantity > book.Quantity {
		return domain.Book{}, invalid("available quantity exceeds quantity")
	}
	book.ID = 0

	row := mapping.BookToRow(book)
	if err := b.store.CreateBook(ctx, &row); err != nil {
		return domain.Book{}, fmt.Errorf("failed to create book: %w", err)
	}
	return mapping.BookFromRow(row), nil
}

func (b *Books) Update(ctx context.Context, id uint, patch domain.BookPatch) (domain.Book, error) {
	return query.Mutate(ctx, b.query, b.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceBooks},
		SuccessTitle: "Book updated",
		ErrorTitle:   "Could not update book",
	}, func(ctx context.Context) (domain.Book, error) {
		if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
			return domain.Book{}, invalid("title is required")
		}
		row, err := b.store.UpdateBook(ctx, id, mapping.BookPatchColumns(patch))
		if err != nil {
			return domain.Book{}, remoteErr(err, "book", id)
		}
		return mapping.BookFromRow(*row), nil
	})
}

func (b *Books) Delete(ctx context.Context, id uint) error {
	_, err := query.Mutate(ctx, b.query, b.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceBooks},
		SuccessTitle: "Book deleted",
		ErrorTitle:   "Could not delete book",
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, remoteErr(b.store.DeleteBook(ctx, id), "book", id)
	})
	return err
}

func (b *Books) fetchAll(ctx context.Context) ([]domain.Book, error) {
	rows, err := b.store.GetBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	return mapping.BooksFromRows(rows), nil
}

func (b *Books) fetchOne(ctx context.Context, id uint) (domain.Book, error) {
	row, err := b.store.GetBookByID(ctx, id)
	if err != nil {
		return domain.Book{}, remoteErr(err, "book", id)
	}
	return mapping.BookFromRow(*row), nil
}

// adjustStock changes a book's copy counts by the given deltas, keeping both at zero or above.
func adjustStock(ctx context.Context, store BookStore, id uint, quantity, available int) (domain.Book, error) {
	row, err := store.GetBookByID(ctx, id)
	if err != nil {
		return domain.Book{}, remoteErr(err, "book", id)
	}
	book := mapping.BookFromRow(*row)

	q := max(book.Quantity+quantity, 0)
	a := min(max(book.AvailableQuantity+available, 0), q)
	updated, err := store.UpdateBook(ctx, id, mapping.BookPatchColumns(domain.BookPatch{
		Quantity:          &q,
		AvailableQuantity: &a,
	}))
	if err != nil {
		return domain.Book{}, remoteErr(err, "book", id)
	}
	return mapping.BookFromRow(*updated), nil
}
