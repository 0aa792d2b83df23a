package resources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libraryhub/internal/database/books"
	"github.com/mrlokans/libraryhub/internal/database/loans"
	"github.com/mrlokans/libraryhub/internal/database/sales"
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/entities"
	"github.com/mrlokans/libraryhub/internal/notify"
)

var errStockRejected = errors.New("update rejected")

// stockRejectingBooks reads the real catalog but refuses every stock change.
type stockRejectingBooks struct {
	BookStore
}

func (stockRejectingBooks) UpdateBook(context.Context, uint, map[string]any) (*entities.Book, error) {
	return nil, errStockRejected
}

func (f *fixture) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.DB.Model(model).Count(&n).Error)
	return n
}

func lastNotification(t *testing.T, feed *notify.Feed) notify.Notification {
	t.Helper()
	recent := feed.Recent(1)
	require.Len(t, recent, 1)
	return recent[0]
}

func TestLoans_CreateRollsBackWhenStockUpdateFails(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := f.addBook(t, "Dune", 2, 0)
	rejecting := stockRejectingBooks{BookStore: books.NewRepository(f.db.DB)}
	lender := NewLoans(loans.NewRepository(f.db.DB), rejecting, f.db, f.settings, f.activity, f.query, f.feed)

	_, err := lender.Create(ctx, 1, book.ID)
	assert.ErrorIs(t, err, errStockRejected)

	assert.Zero(t, f.countRows(t, &entities.Loan{}))
	stored, err := f.books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AvailableQuantity)
	assert.Zero(t, f.activity.Len())
	assert.Equal(t, notify.SeverityError, lastNotification(t, f.feed).Severity)
}

func TestLoans_ReturnRollsBackWhenStockUpdateFails(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := f.addBook(t, "Dune", 1, 0)
	loan, err := f.loans.Create(ctx, 1, book.ID)
	require.NoError(t, err)

	rejecting := stockRejectingBooks{BookStore: books.NewRepository(f.db.DB)}
	lender := NewLoans(loans.NewRepository(f.db.DB), rejecting, f.db, f.settings, f.activity, f.query, f.feed)

	_, err = lender.Return(ctx, loan.ID)
	assert.ErrorIs(t, err, errStockRejected)

	stored, err := f.loans.fetchOne(ctx, loan.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOpen())
	assert.Nil(t, stored.ReturnedAt)
}

func TestSales_CreateRollsBackWhenStockUpdateFails(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := f.addBook(t, "Dune", 3, 10)
	rejecting := stockRejectingBooks{BookStore: books.NewRepository(f.db.DB)}
	shop := NewSales(sales.NewRepository(f.db.DB), rejecting, f.db, f.activity, f.query, f.feed)

	_, err := shop.Create(ctx, domain.NewSale{UserID: 1, BookID: book.ID, Quantity: 2})
	assert.ErrorIs(t, err, errStockRejected)

	assert.Zero(t, f.countRows(t, &entities.Sale{}))
	stored, err := f.books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Quantity)
}

func TestSales_CancelRollsBackWhenRestockFails(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := f.addBook(t, "Dune", 3, 10)
	sale, err := f.sales.Create(ctx, domain.NewSale{UserID: 1, BookID: book.ID, Quantity: 1})
	require.NoError(t, err)

	rejecting := stockRejectingBooks{BookStore: books.NewRepository(f.db.DB)}
	shop := NewSales(sales.NewRepository(f.db.DB), rejecting, f.db, f.activity, f.query, f.feed)

	_, err = shop.UpdateStatus(ctx, sale.ID, domain.SaleStatusFailed)
	assert.ErrorIs(t, err, errStockRejected)

	var row entities.Sale
	require.NoError(t, f.db.DB.First(&row, sale.ID).Error)
	assert.Equal(t, entities.SaleStatusConfirmed, row.Status)
}

func TestDirectTx(t *testing.T) {
	got, err := inTx(context.Background(), directTx{}, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
