package entrypoint

import (
	"fmt"
	"log"

	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/config"
	"github.com/mrlokans/libraryhub/internal/database"
	"github.com/mrlokans/libraryhub/internal/database/books"
	"github.com/mrlokans/libraryhub/internal/database/loans"
	"github.com/mrlokans/libraryhub/internal/database/sales"
	"github.com/mrlokans/libraryhub/internal/database/settings"
	"github.com/mrlokans/libraryhub/internal/database/slots"
	"github.com/mrlokans/libraryhub/internal/database/users"
	"github.com/mrlokans/libraryhub/internal/drafts"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/query"
	"github.com/mrlokans/libraryhub/internal/resources"
	"github.com/mrlokans/libraryhub/internal/storage"
	"github.com/mrlokans/libraryhub/internal/wishlist"
)

// App holds the containers and remote resources shared by the server and the CLI commands.
// Every consumer receives them from here; nothing is reached through package globals.
type App struct {
	Config *config.Config
	DB     *database.Database

	Backend  storage.Backend
	Feed     *notify.Feed
	Notifier notify.Notifier
	Query    *query.Client

	Wishlists *wishlist.Registry
	Activity  *activity.Log
	Drafts    *drafts.Store

	Books    *resources.Books
	Sales    *resources.Sales
	Loans    *resources.Loans
	Users    *resources.Users
	Settings *resources.Settings
}

// NewApp opens the database and constructs every container and resource.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	backend, err := newBackend(cfg.Storage.Backend, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	feed := notify.NewFeed(cfg.Notifications.FeedSize)
	notifier := notify.Multi(notify.LogNotifier{}, feed)
	q := query.NewClient(cfg.Query.StaleTime)

	activityLog := activity.NewLog(backend, cfg.Storage.ActivitySlot, activity.Options{
		MaxEntries: cfg.Activity.MaxEntries,
	})

	bookRepo := books.NewRepository(db.DB)
	settingsResource := resources.NewSettings(settings.NewRepository(db.DB), q, notifier)

	return &App{
		Config:   cfg,
		DB:       db,
		Backend:  backend,
		Feed:     feed,
		Notifier: notifier,
		Query:    q,

		Wishlists: wishlist.NewRegistry(backend, cfg.Storage.WishlistSlotPrefix, notifier),
		Activity:  activityLog,
		Drafts:    drafts.NewStore(backend, cfg.Storage.DraftsSlot),

		Books:    resources.NewBooks(bookRepo, q, notifier),
		Sales:    resources.NewSales(sales.NewRepository(db.DB), bookRepo, db, activityLog, q, notifier),
		Loans:    resources.NewLoans(loans.NewRepository(db.DB), bookRepo, db, settingsResource, activityLog, q, notifier),
		Users:    resources.NewUsers(users.NewRepository(db.DB), q, notifier),
		Settings: settingsResource,
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}

// newBackend picks the durable store for client state. The "none" backend returns a nil
// Backend: containers then keep their state in memory only and log every dropped write.
func newBackend(kind string, db *database.Database) (storage.Backend, error) {
	switch kind {
	case config.StorageSQLite, "":
		return slots.NewRepository(db.DB), nil
	case config.StorageMemory:
		log.Printf("WARNING: storage backend is memory, client state is lost on restart")
		return storage.NewMemoryBackend(), nil
	case config.StorageNone:
		log.Printf("WARNING: storage backend disabled, client state is not persisted")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
