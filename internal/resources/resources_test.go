package resources

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/database"
	"github.com/mrlokans/libraryhub/internal/database/books"
	"github.com/mrlokans/libraryhub/internal/database/loans"
	"github.com/mrlokans/libraryhub/internal/database/sales"
	"github.com/mrlokans/libraryhub/internal/database/settings"
	"github.com/mrlokans/libraryhub/internal/database/users"
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/query"
	"github.com/mrlokans/libraryhub/internal/storage"
)

var (
	_ BookStore    = (*books.Repository)(nil)
	_ SaleStore    = (*sales.Repository)(nil)
	_ LoanStore    = (*loans.Repository)(nil)
	_ UserStore    = (*users.Repository)(nil)
	_ SettingStore = (*settings.Repository)(nil)
)

type fixture struct {
	db       *database.Database
	query    *query.Client
	feed     *notify.Feed
	activity *activity.Log

	books    *Books
	sales    *Sales
	loans    *Loans
	users    *Users
	settings *Settings
}

func setupTestDB(t *testing.T) (*fixture, func()) {
	t.Helper()
	dbPath := "./test_resources_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath, database.WithLogLevel(logger.Silent))
	require.NoError(t, err)

	q := query.NewClient(time.Hour)
	feed := notify.NewFeed(0)
	log := activity.NewLog(storage.NewMemoryBackend(), "", activity.Options{})

	bookRepo := books.NewRepository(db.DB)
	f := &fixture{
		db:       db,
		query:    q,
		feed:     feed,
		activity: log,
		books:    NewBooks(bookRepo, q, feed),
		users:    NewUsers(users.NewRepository(db.DB), q, feed),
		settings: NewSettings(settings.NewRepository(db.DB), q, feed),
	}
	f.sales = NewSales(sales.NewRepository(db.DB), bookRepo, db, log, q, feed)
	f.loans = NewLoans(loans.NewRepository(db.DB), bookRepo, db, f.settings, log, q, feed)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return f, cleanup
}

func (f *fixture) addBook(t *testing.T, title string, quantity int, price float64) domain.Book {
	t.Helper()
	book, err := f.books.Create(context.Background(), domain.Book{Title: title, Author: "Author", Quantity: quantity, Price: price})
	require.NoError(t, err)
	return book
}

func ptr[T any](v T) *T { return &v }
