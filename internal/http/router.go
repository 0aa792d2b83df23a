package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/session"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.DemoMiddleware != nil {
		router.Use(cfg.DemoMiddleware.Handler())
	}

	// CSRF runs before the session loader so the session context is not replaced
	if len(cfg.CSRFSecret) > 0 {
		router.Use(session.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadSave())
	}

	mw := cfg.Session
	if mw == nil {
		mw = session.NewMiddleware(cfg.SessionManager, cfg.Users)
	}
	router.Use(mw.Handler())

	var adminOnly, staffOnly gin.HandlerFunc = allowAll, allowAll
	if cfg.EnforceRoles {
		adminOnly = mw.RequireRole(domain.RoleAdmin)
		staffOnly = mw.RequireRole(domain.RoleAdmin, domain.RoleLibrarian)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	api := router.Group("/api")

	sessions := NewSessionController(mw)
	api.GET("/session", sessions.Current)
	api.POST("/session", sessions.Login)
	api.DELETE("/session", sessions.Logout)

	requireUser := mw.RequireUser()

	if cfg.Wishlists != nil {
		wl := NewWishlistController(cfg.Wishlists)
		group := api.Group("/wishlist", requireUser)
		group.GET("", wl.List)
		group.GET("/:bookId", wl.Contains)
		group.POST("/:bookId", wl.Add)
		group.DELETE("/:bookId", wl.Remove)
		group.POST("/:bookId/toggle", wl.Toggle)
	}

	if cfg.Activity != nil {
		activity := NewActivityController(cfg.Activity)
		api.GET("/activity", activity.List)
		api.DELETE("/activity", requireUser, activity.Clear)
	}

	if cfg.Notifications != nil {
		notifications := NewNotificationsController(cfg.Notifications)
		api.GET("/notifications", notifications.List)
		api.DELETE("/notifications", requireUser, notifications.Clear)
	}

	if cfg.Drafts != nil {
		drafts := NewDraftsController(cfg.Drafts, cfg.Books, cfg.DraftActivity, cfg.DraftEnricher, cfg.Tasks)
		group := api.Group("/drafts", staffOnly)
		group.GET("", drafts.List)
		group.POST("", drafts.Add)
		group.DELETE("", drafts.Clear)
		group.POST("/remove", drafts.RemoveMany)
		group.POST("/catalog", drafts.Catalog)
		group.GET("/:id", drafts.Get)
		group.PATCH("/:id", drafts.Update)
		group.DELETE("/:id", drafts.Remove)
		group.POST("/:id/enrich", drafts.Enrich)
	}

	if cfg.Books != nil {
		books := NewBooksController(cfg.Books)
		api.GET("/books", books.List)
		api.GET("/books/:id", books.Get)
		api.POST("/books", staffOnly, books.Create)
		api.PATCH("/books/:id", staffOnly, books.Update)
		api.DELETE("/books/:id", staffOnly, books.Delete)
	}

	if cfg.Sales != nil {
		sales := NewSalesController(cfg.Sales)
		api.GET("/sales", staffOnly, sales.List)
		api.GET("/me/sales", sales.Mine)
		api.POST("/sales", sales.Create)
		api.PATCH("/sales/:id/status", staffOnly, sales.UpdateStatus)
		api.DELETE("/sales/:id", adminOnly, sales.Delete)
	}

	if cfg.Loans != nil {
		loans := NewLoansController(cfg.Loans)
		api.GET("/loans", staffOnly, loans.List)
		api.GET("/loans/due-soon", staffOnly, loans.DueSoon)
		api.GET("/me/loans", loans.Mine)
		api.GET("/loans/:id", loans.Get)
		api.POST("/loans", loans.Create)
		api.POST("/loans/:id/renew", loans.Renew)
		api.POST("/loans/:id/return", staffOnly, loans.Return)
	}

	if cfg.Users != nil {
		users := NewUsersController(cfg.Users)
		api.GET("/me", users.Me)
		api.GET("/users", staffOnly, users.List)
		api.GET("/users/:id", staffOnly, users.Get)
		api.POST("/users", adminOnly, users.Create)
		api.PATCH("/users/:id", adminOnly, users.UpdateProfile)
		api.POST("/users/:id/roles", adminOnly, users.AddRole)
		api.DELETE("/users/:id/roles/:role", adminOnly, users.RemoveRole)
	}

	if cfg.Settings != nil {
		settings := NewSettingsController(cfg.Settings)
		api.GET("/settings", settings.Get)
		api.PUT("/settings/:key", adminOnly, settings.Update)
	}

	taskController := NewTasksController(cfg.Tasks, cfg.Reminders)
	api.POST("/tasks", staffOnly, taskController.RunTask)
	api.GET("/tasks/:id", taskController.GetTaskStatus)
	api.POST("/reminders/run", staffOnly, taskController.RunReminders)

	return router
}

func allowAll(c *gin.Context) { c.Next() }
