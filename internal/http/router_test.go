package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/database"
	"github.com/mrlokans/libraryhub/internal/database/books"
	"github.com/mrlokans/libraryhub/internal/database/loans"
	"github.com/mrlokans/libraryhub/internal/database/sales"
	"github.com/mrlokans/libraryhub/internal/database/settings"
	"github.com/mrlokans/libraryhub/internal/database/users"
	"github.com/mrlokans/libraryhub/internal/demo"
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/drafts"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/query"
	"github.com/mrlokans/libraryhub/internal/resources"
	"github.com/mrlokans/libraryhub/internal/session"
	"github.com/mrlokans/libraryhub/internal/storage"
	"github.com/mrlokans/libraryhub/internal/wishlist"
)

type testApp struct {
	router   *gin.Engine
	db       *database.Database
	feed     *notify.Feed
	activity *activity.Log
	drafts    *drafts.Store
	wishlists *wishlist.Registry
	books    *resources.Books
	users    *resources.Users
}

func setupTestApp(t *testing.T, enforceRoles bool) (*testApp, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath, database.WithLogLevel(logger.Silent))
	require.NoError(t, err)

	backend := storage.NewMemoryBackend()
	q := query.NewClient(time.Hour)
	feed := notify.NewFeed(0)
	activityLog := activity.NewLog(backend, "", activity.Options{})

	bookRepo := books.NewRepository(db.DB)
	app := &testApp{
		db:       db,
		feed:     feed,
		activity: activityLog,
		drafts:    drafts.NewStore(backend, ""),
		wishlists: wishlist.NewRegistry(backend, "", feed),
		books:    resources.NewBooks(bookRepo, q, feed),
		users:    resources.NewUsers(users.NewRepository(db.DB), q, feed),
	}
	settingsRes := resources.NewSettings(settings.NewRepository(db.DB), q, feed)

	app.router = NewRouter(RouterConfig{
		Version:       "test",
		Database:      db,
		Wishlists:     app.wishlists,
		Activity:      activityLog,
		Drafts:        app.drafts,
		Notifications: feed,
		Books:         app.books,
		Sales:         resources.NewSales(sales.NewRepository(db.DB), bookRepo, db, activityLog, q, feed),
		Loans:         resources.NewLoans(loans.NewRepository(db.DB), bookRepo, db, settingsRes, activityLog, q, feed),
		Users:         app.users,
		Settings:      settingsRes,
		DraftActivity: activityLog,
		EnforceRoles:  enforceRoles,
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return app, cleanup
}

func (a *testApp) do(t *testing.T, method, path string, body any, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(session.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func (a *testApp) addBook(t *testing.T, title string, quantity int) domain.Book {
	t.Helper()
	book, err := a.books.Create(context.Background(), domain.Book{Title: title, Author: "Author", Quantity: quantity, Price: 10})
	require.NoError(t, err)
	return book
}

func (a *testApp) addUser(t *testing.T, email string, roles ...domain.Role) domain.User {
	t.Helper()
	user, err := a.users.Create(context.Background(), domain.User{FullName: email, Email: email, Roles: roles})
	require.NoError(t, err)
	return user
}

func TestHealth(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	w := app.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	decode(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "test", resp.Version)
}

func TestWishlistEndpoints(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	w := app.do(t, http.MethodPost, "/api/wishlist/42", map[string]string{"label": "Dune"}, "1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"42"}, app.wishlists.For(1).Items())

	w = app.do(t, http.MethodPost, "/api/wishlist/43/toggle", nil, "1")
	require.Equal(t, http.StatusOK, w.Code)
	var toggled map[string]any
	decode(t, w, &toggled)
	assert.Equal(t, true, toggled["on_wishlist"])
	assert.Equal(t, float64(2), toggled["count"])

	// another profile has its own wishlist
	w = app.do(t, http.MethodGet, "/api/wishlist", nil, "2")
	var other map[string]any
	decode(t, w, &other)
	assert.Equal(t, float64(0), other["count"])

	w = app.do(t, http.MethodDelete, "/api/wishlist/42", nil, "1")
	var mine map[string]any
	decode(t, w, &mine)
	assert.Equal(t, []any{"43"}, mine["items"])

	w = app.do(t, http.MethodGet, "/api/wishlist/43", nil, "1")
	var contains map[string]any
	decode(t, w, &contains)
	assert.Equal(t, true, contains["on_wishlist"])

	assert.GreaterOrEqual(t, len(app.feed.RecentFor(1, 0)), 2)
	assert.Empty(t, app.feed.RecentFor(2, 0))

	w = app.do(t, http.MethodGet, "/api/wishlist", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWishlistEndpoints_ConcurrentProfiles(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	ids := []string{"42", "99", "7", "13", "21", "34"}
	var wg sync.WaitGroup
	for _, uid := range []string{"1", "2"} {
		for _, id := range ids {
			wg.Add(1)
			go func(uid, id string) {
				defer wg.Done()
				w := app.do(t, http.MethodPost, "/api/wishlist/"+id, nil, uid)
				assert.Equal(t, http.StatusOK, w.Code)
			}(uid, id)
		}
	}
	wg.Wait()

	w := app.do(t, http.MethodPost, "/api/wishlist/99/toggle", nil, "2")
	require.Equal(t, http.StatusOK, w.Code)

	for _, uid := range []string{"1", "2"} {
		w := app.do(t, http.MethodGet, "/api/wishlist", nil, uid)
		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			UserID uint     `json:"user_id"`
			Items  []string `json:"items"`
		}
		decode(t, w, &got)
		assert.Equal(t, uid, jsonNumber(got.UserID))
		if uid == "1" {
			assert.ElementsMatch(t, ids, got.Items)
		} else {
			assert.ElementsMatch(t, []string{"42", "7", "13", "21", "34"}, got.Items)
		}
	}

	assert.ElementsMatch(t, ids, app.wishlists.For(1).Items())
	assert.NotContains(t, app.wishlists.For(2).Items(), "99")
}

func TestDraftEndpoints(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	w := app.do(t, http.MethodPost, "/api/drafts", map[string]any{"codes": []string{"978-1", "978-2", "  "}}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Drafts []domain.BookDraft `json:"drafts"`
		Count  int                `json:"count"`
	}
	decode(t, w, &created)
	require.Equal(t, 2, created.Count)
	first, second := created.Drafts[0].ID, created.Drafts[1].ID

	w = app.do(t, http.MethodPatch, "/api/drafts/"+first, map[string]any{"status": "confirmed", "title": "Dune"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodDelete, "/api/drafts/"+second, nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodGet, "/api/drafts?status=confirmed", nil, "")
	var listed struct {
		Drafts []domain.BookDraft `json:"drafts"`
	}
	decode(t, w, &listed)
	require.Len(t, listed.Drafts, 1)
	assert.Equal(t, first, listed.Drafts[0].ID)

	w = app.do(t, http.MethodPatch, "/api/drafts/missing", map[string]any{"title": "x"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	t.Run("catalog inline without a task queue", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/drafts/catalog", nil, "5")
		require.Equal(t, http.StatusOK, w.Code)
		var result map[string]any
		decode(t, w, &result)
		assert.Equal(t, float64(1), result["count"])

		d, _ := app.drafts.Get(first)
		assert.Equal(t, domain.DraftStatusCataloged, d.Status)

		entries := app.activity.ForUser(5)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.ActivityBookCataloged, entries[0].Type)
	})

	t.Run("enrich without metadata lookup", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/drafts/"+first+"/enrich", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestBookEndpoints(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	w := app.do(t, http.MethodPost, "/api/books", map[string]any{"title": "Dune", "author": "Herbert", "isbn": "9780441013593", "quantity": 2}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var book domain.Book
	decode(t, w, &book)
	assert.Equal(t, 2, book.AvailableQuantity)

	w = app.do(t, http.MethodGet, "/api/books?isbn=9780441013593", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/books?q=dun", nil, "")
	var found map[string]any
	decode(t, w, &found)
	assert.Equal(t, float64(1), found["count"])

	w = app.do(t, http.MethodPost, "/api/books", map[string]any{"author": "Nobody"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/books/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/api/books/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoanEndpoints(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	book := app.addBook(t, "Dune", 1)
	user := app.addUser(t, "ada@example.com", domain.RoleMember)
	uid := jsonNumber(user.ID)

	w := app.do(t, http.MethodPost, "/api/loans", map[string]any{"bookId": book.ID}, uid)
	require.Equal(t, http.StatusCreated, w.Code)
	var loan domain.Loan
	decode(t, w, &loan)
	assert.Equal(t, user.ID, loan.UserID)
	assert.Equal(t, domain.LoanStatusActive, loan.Status)

	w = app.do(t, http.MethodPost, "/api/loans", map[string]any{"bookId": book.ID}, uid)
	assert.Equal(t, http.StatusConflict, w.Code)
	var conflict ErrorResponse
	decode(t, w, &conflict)
	assert.Equal(t, "book_unavailable", conflict.Code)

	w = app.do(t, http.MethodPost, "/api/loans/"+jsonNumber(loan.ID)+"/renew", nil, uid)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/loans/"+jsonNumber(loan.ID)+"/return", nil, uid)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/loans/"+jsonNumber(loan.ID)+"/renew", nil, uid)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodGet, "/api/me/loans", nil, uid)
	var mine map[string]any
	decode(t, w, &mine)
	assert.Equal(t, float64(1), mine["count"])

	w = app.do(t, http.MethodGet, "/api/activity", nil, uid)
	var history map[string]any
	decode(t, w, &history)
	assert.Equal(t, float64(3), history["total"])
}

func TestActivityEndpoints_ScopedToProfile(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	app.activity.Append(domain.NewActivity{Type: domain.ActivityLoanConfirmed, UserID: 1, Description: "first"})
	app.activity.Append(domain.NewActivity{Type: domain.ActivityLoanConfirmed, UserID: 2, Description: "second"})

	w := app.do(t, http.MethodGet, "/api/activity", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var anon map[string]any
	decode(t, w, &anon)
	assert.Equal(t, float64(0), anon["total"])
	assert.Equal(t, []any{}, anon["activities"])

	w = app.do(t, http.MethodDelete, "/api/activity", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 2, app.activity.Len())

	w = app.do(t, http.MethodDelete, "/api/activity", nil, "1")
	require.Equal(t, http.StatusOK, w.Code)
	var cleared map[string]any
	decode(t, w, &cleared)
	assert.Equal(t, float64(1), cleared["removed"])

	assert.Empty(t, app.activity.ForUser(1))
	remaining := app.activity.ForUser(2)
	require.Len(t, remaining, 1)
	assert.Equal(t, "second", remaining[0].Description)

	w = app.do(t, http.MethodGet, "/api/activity", nil, "2")
	var theirs map[string]any
	decode(t, w, &theirs)
	assert.Equal(t, float64(1), theirs["total"])
}

func TestNotificationEndpoints_ScopedToProfile(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	app.feed.Notify(notify.Notification{Severity: notify.SeverityInfo, Title: "for one", UserID: 1})
	app.feed.Notify(notify.Notification{Severity: notify.SeverityInfo, Title: "for two", UserID: 2})

	w := app.do(t, http.MethodGet, "/api/notifications", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var anon map[string]any
	decode(t, w, &anon)
	assert.Equal(t, float64(0), anon["count"])

	w = app.do(t, http.MethodDelete, "/api/notifications", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 2, app.feed.Len())

	w = app.do(t, http.MethodGet, "/api/notifications", nil, "1")
	var mine struct {
		Notifications []notify.Notification `json:"notifications"`
	}
	decode(t, w, &mine)
	require.Len(t, mine.Notifications, 1)
	assert.Equal(t, "for one", mine.Notifications[0].Title)

	w = app.do(t, http.MethodDelete, "/api/notifications", nil, "1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, app.feed.RecentFor(1, 0))
	require.Len(t, app.feed.RecentFor(2, 0), 1)

	// writes made by a profile notify that profile
	book := app.addBook(t, "Dune", 1)
	w = app.do(t, http.MethodPost, "/api/loans", map[string]any{"bookId": book.ID}, "2")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, app.feed.RecentFor(2, 0), 2)
	assert.Empty(t, app.feed.RecentFor(1, 0))
}

func TestSettingsEndpoints(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	w := app.do(t, http.MethodPut, "/api/settings/business_rules", map[string]any{"maxLoanDays": 20}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/settings", nil, "")
	var got domain.SystemSettings
	decode(t, w, &got)
	assert.Equal(t, 20, got.BusinessRules.MaxLoanDays)
	assert.Equal(t, domain.DefaultBusinessRules().MaxRenewals, got.BusinessRules.MaxRenewals)

	w = app.do(t, http.MethodPut, "/api/settings/unknown", map[string]any{"x": 1}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	notes := app.feed.Recent(0)
	require.NotEmpty(t, notes)
	assert.Equal(t, notify.SeverityError, notes[0].Severity)
}

func TestSaleEndpoints(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	book := app.addBook(t, "Dune", 3)

	w := app.do(t, http.MethodPost, "/api/sales", map[string]any{"bookId": book.ID, "quantity": 2}, "7")
	require.Equal(t, http.StatusCreated, w.Code)
	var sale domain.Sale
	decode(t, w, &sale)
	assert.Equal(t, uint(7), sale.UserID)
	assert.Equal(t, 20.0, sale.Total)

	w = app.do(t, http.MethodPatch, "/api/sales/"+jsonNumber(sale.ID)+"/status", map[string]any{"status": "failed"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	restocked, err := app.books.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, restocked.AvailableQuantity)

	w = app.do(t, http.MethodPost, "/api/sales", map[string]any{"bookId": book.ID, "quantity": 10}, "7")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRoleEnforcement(t *testing.T) {
	app, cleanup := setupTestApp(t, true)
	defer cleanup()

	admin := app.addUser(t, "admin@example.com", domain.RoleAdmin)
	member := app.addUser(t, "member@example.com", domain.RoleMember)
	body := map[string]any{"email": "new@example.com"}

	w := app.do(t, http.MethodPost, "/api/users", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/api/users", body, jsonNumber(member.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/api/users", body, jsonNumber(admin.ID))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/api/me", nil, jsonNumber(member.ID))
	require.Equal(t, http.StatusOK, w.Code)
	var me domain.User
	decode(t, w, &me)
	assert.Equal(t, "member@example.com", me.Email)
}

func TestBackgroundEndpointsDisabled(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	w := app.do(t, http.MethodPost, "/api/tasks", map[string]any{"type": "prune_activity"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = app.do(t, http.MethodPost, "/api/reminders/run", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = app.do(t, http.MethodPost, "/api/session", map[string]any{"userId": 1}, "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func jsonNumber(id uint) string {
	data, _ := json.Marshal(id)
	return string(data)
}

func TestDemoModeBlocksCatalogWrites(t *testing.T) {
	app, cleanup := setupTestApp(t, false)
	defer cleanup()

	router := NewRouter(RouterConfig{
		Database:       app.db,
		Wishlists:      app.wishlists,
		Books:          app.books,
		DemoMiddleware: demo.NewMiddleware(true),
	})
	app.router = router

	w := app.do(t, http.MethodPost, "/api/books", map[string]any{"title": "Dune"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/api/wishlist/1", nil, "3")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/books", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
