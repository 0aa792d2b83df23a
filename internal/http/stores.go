package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/drafts"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/wishlist"
)

// Each controller depends on the narrow interface below; the composition root passes the
// containers, resources and background services that satisfy them.

// --- Client-side containers ---

type WishlistStore interface {
	Items() []string
	Count() int
	Contains(bookID string) bool
	Toggle(bookID, label string) bool
	Add(bookID, label string)
	Remove(bookID, label string)
}

// WishlistRegistry hands out each profile's own wishlist.
type WishlistRegistry interface {
	For(userID uint) *wishlist.Store
}

type ActivityLog interface {
	ForUser(userID uint) []domain.ActivityEntry
	ClearUser(userID uint) int
}

type DraftStore interface {
	AddBatch(codes []string) []domain.BookDraft
	UpdateOne(id string, patch domain.DraftPatch) bool
	RemoveOne(id string)
	RemoveMany(ids []string)
	ClearAll()
	All() []domain.BookDraft
	Get(id string) (domain.BookDraft, bool)
	ByStatus(status domain.DraftStatus) []domain.BookDraft
	Catalog(ctx context.Context, creator drafts.BookCreator, rec drafts.ActivityRecorder, userID uint) (drafts.CatalogResult, error)
}

type NotificationFeed interface {
	RecentFor(userID uint, limit int) []notify.Notification
	ClearFor(userID uint) int
}

// --- Remote resources ---

type BookService interface {
	List(ctx context.Context) ([]domain.Book, error)
	Get(ctx context.Context, id uint) (domain.Book, error)
	Search(ctx context.Context, q string) ([]domain.Book, error)
	FindByISBN(ctx context.Context, isbn string) (domain.Book, error)
	Create(ctx context.Context, book domain.Book) (domain.Book, error)
	Update(ctx context.Context, id uint, patch domain.BookPatch) (domain.Book, error)
	Delete(ctx context.Context, id uint) error
}

type SaleService interface {
	List(ctx context.Context) ([]domain.Sale, error)
	ListForUser(ctx context.Context, userID uint) ([]domain.Sale, error)
	Create(ctx context.Context, in domain.NewSale) (domain.Sale, error)
	UpdateStatus(ctx context.Context, id uint, status domain.SaleStatus) (domain.Sale, error)
	Delete(ctx context.Context, id uint) error
}

type LoanService interface {
	List(ctx context.Context) ([]domain.Loan, error)
	ListForUser(ctx context.Context, userID uint) ([]domain.Loan, error)
	Get(ctx context.Context, id uint) (domain.Loan, error)
	Create(ctx context.Context, userID, bookID uint) (domain.Loan, error)
	Renew(ctx context.Context, id uint) (domain.Loan, error)
	Return(ctx context.Context, id uint) (domain.Loan, error)
	DueSoon(ctx context.Context) ([]domain.Loan, error)
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id uint) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	UpdateProfile(ctx context.Context, id uint, patch domain.ProfilePatch) (domain.User, error)
	AddRole(ctx context.Context, userID uint, role domain.Role) error
	RemoveRole(ctx context.Context, userID uint, role domain.Role) error
}

type SettingsService interface {
	Get(ctx context.Context) (domain.SystemSettings, error)
	Update(ctx context.Context, key string, value any) (domain.SystemSettings, error)
}

// --- Background work ---

type TaskQueue interface {
	Enqueue(tasks ...backlite.Task) ([]string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

type ReminderRunner interface {
	RunNow(ctx context.Context) (int, error)
	NextRun() *time.Time
}
