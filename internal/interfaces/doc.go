// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the narrow interface they need next to themselves; this package holds
// no types, only the compile-time checks tying implementations to those interfaces.
//
// # Interface Categories
//
// ## Persistence
//
//   - storage.Backend: durable string slots (database/slots, storage.MemoryBackend)
//   - resources.Transactor: one remote transaction per write (database.Database)
//   - resources.BookStore, SaleStore, LoanStore, UserStore, SettingStore: remote rows
//     (internal/database sub-packages)
//
// ## Client-side containers
//
//   - http.WishlistRegistry, http.WishlistStore: one wishlist per profile (internal/wishlist)
//   - http.ActivityLog, resources.ActivityRecorder, tasks.ActivityPruner: the activity log
//   - http.DraftStore, metadata.DraftUpdater: intake drafts (internal/drafts)
//
// ## Remote resources
//
//   - http.BookService, SaleService, LoanService, UserService, SettingsService
//   - drafts.BookCreator, session.UserLookup, scheduler.DueLoanSource
//
// ## Background work
//
//   - http.TaskQueue (tasks.Client), http.ReminderRunner (scheduler.DueReminderScheduler)
//   - tasks.DraftEnricher (metadata.Enricher), metadata.Provider (metadata.OpenLibraryClient)
//
// # Adding a New Metadata Provider
//
// To add a new source of edition metadata (e.g., Google Books):
//
//  1. Implement metadata.Provider in internal/metadata/:
//
//	type GoogleBooksClient struct {
//		apiKey     string
//		httpClient *http.Client
//	}
//
//	func (c *GoogleBooksClient) SearchByISBN(ctx context.Context, isbn string) (*BookMetadata, error)
//
//  2. Add a check to checks.go and pass it to metadata.NewEnricher in entrypoint.go
//
// # Adding a New Remote Resource
//
//  1. Create sub-package: internal/database/reservations/ with Repository{db *gorm.DB}
//  2. Add domain records and mapping functions
//  3. Add the resource in internal/resources, wrapping every write in query.Mutate
//  4. Add compile-time checks:
//
//	var _ resources.ReservationStore = (*reservations.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
