package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/cli"
	"github.com/mrlokans/libraryhub/internal/database"
	"github.com/mrlokans/libraryhub/internal/database/books"
	"github.com/mrlokans/libraryhub/internal/database/loans"
	"github.com/mrlokans/libraryhub/internal/database/sales"
	"github.com/mrlokans/libraryhub/internal/database/settings"
	"github.com/mrlokans/libraryhub/internal/database/slots"
	"github.com/mrlokans/libraryhub/internal/database/users"
	"github.com/mrlokans/libraryhub/internal/drafts"
	"github.com/mrlokans/libraryhub/internal/http"
	"github.com/mrlokans/libraryhub/internal/metadata"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/resources"
	"github.com/mrlokans/libraryhub/internal/scheduler"
	"github.com/mrlokans/libraryhub/internal/session"
	"github.com/mrlokans/libraryhub/internal/storage"
	"github.com/mrlokans/libraryhub/internal/tasks"
	"github.com/mrlokans/libraryhub/internal/wishlist"
)

// =============================================================================
// Persistence
// =============================================================================

var _ storage.Backend = (*slots.Repository)(nil)
var _ storage.Backend = (*storage.MemoryBackend)(nil)

var _ resources.Transactor = (*database.Database)(nil)

var _ resources.BookStore = (*books.Repository)(nil)
var _ resources.SaleStore = (*sales.Repository)(nil)
var _ resources.LoanStore = (*loans.Repository)(nil)
var _ resources.UserStore = (*users.Repository)(nil)
var _ resources.SettingStore = (*settings.Repository)(nil)

// =============================================================================
// Client-side containers
// =============================================================================

var _ http.WishlistStore = (*wishlist.Store)(nil)
var _ http.WishlistRegistry = (*wishlist.Registry)(nil)
var _ http.ActivityLog = (*activity.Log)(nil)
var _ http.DraftStore = (*drafts.Store)(nil)
var _ http.NotificationFeed = (*notify.Feed)(nil)
var _ notify.Notifier = (*notify.Feed)(nil)

// ActivityRecorder implementations
var _ resources.ActivityRecorder = (*activity.Log)(nil)
var _ drafts.ActivityRecorder = (*activity.Log)(nil)
var _ scheduler.ActivityRecorder = (*activity.Log)(nil)
var _ tasks.ActivityPruner = (*activity.Log)(nil)

// =============================================================================
// Remote resources
// =============================================================================

var _ http.BookService = (*resources.Books)(nil)
var _ http.SaleService = (*resources.Sales)(nil)
var _ http.LoanService = (*resources.Loans)(nil)
var _ http.UserService = (*resources.Users)(nil)
var _ http.SettingsService = (*resources.Settings)(nil)
var _ cli.SettingsStore = (*resources.Settings)(nil)

var _ drafts.BookCreator = (*resources.Books)(nil)
var _ session.UserLookup = (*resources.Users)(nil)
var _ scheduler.DueLoanSource = (*resources.Loans)(nil)
var _ scheduler.SettingsSource = (*resources.Settings)(nil)

// =============================================================================
// Background work and external services
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.ReminderRunner = (*scheduler.DueReminderScheduler)(nil)
var _ tasks.DraftEnricher = (*metadata.Enricher)(nil)
var _ metadata.Provider = (*metadata.OpenLibraryClient)(nil)
var _ metadata.DraftUpdater = (*drafts.Store)(nil)
