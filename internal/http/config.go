package http

import (
	"github.com/mrlokans/libraryhub/internal/database"
	"github.com/mrlokans/libraryhub/internal/demo"
	"github.com/mrlokans/libraryhub/internal/drafts"
	"github.com/mrlokans/libraryhub/internal/session"
	"github.com/mrlokans/libraryhub/internal/tasks"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
// Optional dependencies are left nil; their endpoints then answer 503.
type RouterConfig struct {
	Version  string
	Database *database.Database

	// Client-side containers
	Wishlists     WishlistRegistry
	Activity      ActivityLog
	Drafts        DraftStore
	Notifications NotificationFeed

	// Remote resources
	Books    BookService
	Sales    SaleService
	Loans    LoanService
	Users    UserService
	Settings SettingsService

	// Background work
	Tasks         TaskQueue
	Reminders     ReminderRunner
	DraftEnricher tasks.DraftEnricher
	DraftActivity drafts.ActivityRecorder

	// Sessions
	SessionManager *session.SessionManager
	Session        *session.Middleware
	CSRFSecret     []byte
	SecureCookies  bool
	// EnforceRoles restricts user administration and settings changes to admins.
	EnforceRoles bool

	// Optional, blocks writes when demo mode is on
	DemoMiddleware *demo.Middleware
}
