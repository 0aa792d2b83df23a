package resources

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libraryhub/internal/domain"
)

func TestLoans_CreateUsesBusinessRules(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	f.loans.now = func() time.Time { return now }

	book := f.addBook(t, "Dune", 2, 0)

	loan, err := f.loans.Create(ctx, 5, book.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusActive, loan.Status)
	assert.True(t, now.AddDate(0, 0, 15).Equal(loan.DueAt))
	assert.Equal(t, "Dune", loan.BookTitle)

	lent, err := f.books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, lent.AvailableQuantity)
	assert.Equal(t, 2, lent.Quantity)

	entry := f.activity.Entries()[0]
	assert.Equal(t, domain.ActivityLoanConfirmed, entry.Type)
	assert.Equal(t, uint(5), entry.UserID)
}

func TestLoans_LimitAndAvailability(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := f.settings.Update(ctx, domain.SettingBusinessRules, map[string]any{"maxSimultaneousLoans": 1})
	require.NoError(t, err)

	single := f.addBook(t, "Single copy", 1, 0)
	other := f.addBook(t, "Other", 1, 0)

	_, err = f.loans.Create(ctx, 1, single.ID)
	require.NoError(t, err)

	_, err = f.loans.Create(ctx, 2, single.ID)
	assert.ErrorIs(t, err, ErrBookUnavailable)

	_, err = f.loans.Create(ctx, 1, other.ID)
	assert.ErrorIs(t, err, ErrLoanLimitReached)
}

func TestLoans_Renew(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := f.addBook(t, "Dune", 1, 0)
	loan, err := f.loans.Create(ctx, 1, book.ID)
	require.NoError(t, err)

	renewed, err := f.loans.Renew(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, renewed.Renewals)
	assert.True(t, loan.DueAt.AddDate(0, 0, 15).Equal(renewed.DueAt))

	_, err = f.loans.Renew(ctx, loan.ID)
	require.NoError(t, err)

	_, err = f.loans.Renew(ctx, loan.ID)
	assert.ErrorIs(t, err, ErrRenewalLimitReached)

	entry := f.activity.Entries()[0]
	assert.Equal(t, domain.ActivityLoanRenewed, entry.Type)
	assert.Equal(t, "Dune", entry.ItemTitle)
}

func TestLoans_Return(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := f.addBook(t, "Dune", 1, 0)
	loan, err := f.loans.Create(ctx, 1, book.ID)
	require.NoError(t, err)

	returned, err := f.loans.Return(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)

	shelf, err := f.books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, shelf.AvailableQuantity)

	_, err = f.loans.Return(ctx, loan.ID)
	assert.ErrorIs(t, err, ErrLoanClosed)
	_, err = f.loans.Renew(ctx, loan.ID)
	assert.ErrorIs(t, err, ErrLoanClosed)

	_, err = f.loans.Return(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoans_DueSoon(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	start := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	first := f.addBook(t, "First", 1, 0)
	second := f.addBook(t, "Second", 1, 0)

	f.loans.now = func() time.Time { return start }
	_, err := f.loans.Create(ctx, 1, first.ID)
	require.NoError(t, err)
	f.loans.now = func() time.Time { return start.AddDate(0, 0, 10) }
	_, err = f.loans.Create(ctx, 1, second.ID)
	require.NoError(t, err)

	// First is due on day 15, second on day 25.
	f.loans.now = func() time.Time { return start.AddDate(0, 0, 13) }
	due, err := f.loans.DueSoon(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, first.ID, due[0].BookID)
	assert.Equal(t, "First", due[0].BookTitle)

	f.loans.now = func() time.Time { return start.AddDate(0, 0, 16) }
	due, err = f.loans.DueSoon(ctx)
	require.NoError(t, err)
	assert.Empty(t, due, "overdue loans are not due soon")

	mine, err := f.loans.ListForUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
