// Package resources exposes the remote entities (books, sales, loans, users, settings) to the
// rest of the application.
//
// Reads go through the query cache under a per-entity namespace. Writes go through
// query.Mutate: they notify the user either way and, on success, invalidate every namespace
// whose data they changed so live subscriptions refetch. Rows are translated by
// internal/mapping in both directions; nothing here hands rows to callers.
package resources

import (
	"context"
	"time"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/entities"
)

// Resource namespaces.
const (
	ResourceBooks    = "books"
	ResourceSales    = "sales"
	ResourceLoans    = "loans"
	ResourceUsers    = "users"
	ResourceSettings = "settings"
)

// BookStore is the remote catalog.
type BookStore interface {
	GetBooks(ctx context.Context) ([]entities.Book, error)
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	FindBookByISBN(ctx context.Context, isbn string) (*entities.Book, error)
	SearchBooks(ctx context.Context, query string) ([]entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, id uint, columns map[string]any) (*entities.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

// SaleStore is the remote sales table.
type SaleStore interface {
	GetSales(ctx context.Context) ([]entities.Sale, error)
	GetSalesForUser(ctx context.Context, userID uint) ([]entities.Sale, error)
	GetSaleByID(ctx context.Context, id uint) (*entities.Sale, error)
	CreateSale(ctx context.Context, sale *entities.Sale) error
	UpdateSaleStatus(ctx context.Context, id uint, status string) (*entities.Sale, error)
	DeleteSale(ctx context.Context, id uint) error
}

// LoanStore is the remote loans table.
type LoanStore interface {
	GetLoans(ctx context.Context) ([]entities.Loan, error)
	GetLoansForUser(ctx context.Context, userID uint) ([]entities.Loan, error)
	GetLoanByID(ctx context.Context, id uint) (*entities.Loan, error)
	CountOpenLoans(ctx context.Context, userID uint) (int64, error)
	GetOpenLoansDueBefore(ctx context.Context, t time.Time) ([]entities.Loan, error)
	CreateLoan(ctx context.Context, loan *entities.Loan) error
	SaveLoan(ctx context.Context, loan *entities.Loan) error
}

// UserStore is the remote profiles and role grants.
type UserStore interface {
	GetProfiles(ctx context.Context) ([]entities.Profile, error)
	GetProfileByID(ctx context.Context, id uint) (*entities.Profile, error)
	CreateProfile(ctx context.Context, profile *entities.Profile) error
	UpdateProfile(ctx context.Context, id uint, columns map[string]any) (*entities.Profile, error)
	GetUserRoles(ctx context.Context) ([]entities.UserRole, error)
	GetRolesForUser(ctx context.Context, userID uint) ([]entities.UserRole, error)
	AddUserRole(ctx context.Context, userID uint, role string) error
	RemoveUserRole(ctx context.Context, userID uint, role string) error
}

// SettingStore is the remote settings documents.
type SettingStore interface {
	GetSettings(ctx context.Context) ([]entities.Setting, error)
	UpdateSetting(ctx context.Context, key, value string) error
}

// Transactor runs fn in one remote transaction. Stores called with the context fn receives
// take part in it, and an error from fn undoes all of their writes.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// directTx runs fn without a transaction, for stores that have none.
type directTx struct{}

func (directTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// inTx runs fn through tx and returns its result.
func inTx[T any](ctx context.Context, tx Transactor, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	return result, err
}

// ActivityRecorder receives the activity entries mutations produce.
type ActivityRecorder interface {
	Append(a domain.NewActivity) domain.ActivityEntry
}

type discardActivity struct{}

func (discardActivity) Append(a domain.NewActivity) domain.ActivityEntry {
	return domain.ActivityEntry{Type: a.Type, Title: a.Title}
}
