package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/config"
	"github.com/mrlokans/libraryhub/internal/demo"
	http_controllers "github.com/mrlokans/libraryhub/internal/http"
	"github.com/mrlokans/libraryhub/internal/metadata"
	"github.com/mrlokans/libraryhub/internal/scheduler"
	"github.com/mrlokans/libraryhub/internal/session"
	"github.com/mrlokans/libraryhub/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting LibraryHub v%s", version)

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	var demoMiddleware *demo.Middleware
	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
		demoMiddleware = demo.NewMiddleware(true)
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	// Interface-typed so that a disabled component stays an untyped nil for the router
	var draftEnricher tasks.DraftEnricher
	if cfg.Metadata.Enabled {
		client := metadata.NewOpenLibraryClient(cfg.Metadata.BaseURL, cfg.Metadata.RequestSpacing)
		draftEnricher = metadata.NewEnricher(client, app.Drafts)
		log.Printf("Metadata lookup enabled (%s)", cfg.Metadata.BaseURL)
	}

	var taskClient *tasks.Client
	var taskQueue http_controllers.TaskQueue
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:               cfg.Tasks.Workers,
			ReleaseAfter:          cfg.Tasks.ReleaseAfter,
			CleanupInterval:       cfg.Tasks.CleanupInterval,
			ActivityRetentionDays: cfg.Activity.RetentionDays,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCatalogDraftsQueue(app.Drafts, app.Books, app.Activity),
			tasks.NewPruneActivityQueue(app.Activity, cfg.Activity.RetentionDays),
		)
		// Enrichment needs a metadata source; without one drafts are filled in by hand
		if draftEnricher != nil {
			taskClient.Register(tasks.NewEnrichDraftQueue(draftEnricher))
		}

		go taskClient.Start(bgCtx)
		taskQueue = taskClient
	}

	if cfg.Activity.RetentionDays > 0 {
		pruneActivity(app, taskClient, cfg.Activity.RetentionDays)
	}

	var reminders *scheduler.DueReminderScheduler
	var reminderRunner http_controllers.ReminderRunner
	if cfg.Reminders.Enabled {
		reminders = scheduler.NewDueReminderScheduler(app.Loans, app.Settings, app.Activity, app.Notifier, cfg.Reminders.Schedule)
		if err := reminders.Start(bgCtx); err != nil {
			log.Printf("WARNING: Failed to start due reminders: %v", err)
		} else {
			reminderRunner = reminders
		}
	}

	var sessionManager *session.SessionManager
	var csrfSecret []byte
	if cfg.Session.Enabled {
		sqlDB, err := app.DB.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}
		sessionManager, err = session.NewSessionManager(sqlDB, cfg.Session)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}
		csrfSecret, err = sessionSecret(cfg.Session.Secret)
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		log.Printf("Sessions enabled")
	} else {
		log.Printf("Sessions disabled, active profile is read from the %s header", session.UserIDHeader)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Version:        version,
		Database:       app.DB,
		Wishlists:      app.Wishlists,
		Activity:       app.Activity,
		Drafts:         app.Drafts,
		Notifications:  app.Feed,
		Books:          app.Books,
		Sales:          app.Sales,
		Loans:          app.Loans,
		Users:          app.Users,
		Settings:       app.Settings,
		Tasks:          taskQueue,
		Reminders:      reminderRunner,
		DraftEnricher:  draftEnricher,
		DraftActivity:  app.Activity,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Session.SecureCookies,
		EnforceRoles:   cfg.Session.Enabled,
		DemoMiddleware: demoMiddleware,
	})

	onShutdown := func(ctx context.Context) {
		if reminders != nil {
			reminders.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		bgCancel()
	}

	Serve(router, cfg, onShutdown)
}

// pruneActivity drops activity entries past the retention window once at startup, through the
// task queue when there is one.
func pruneActivity(app *App, taskClient *tasks.Client, days int) {
	if taskClient != nil {
		if _, err := taskClient.Enqueue(tasks.PruneActivityTask{RetentionDays: days}); err != nil {
			log.Printf("WARNING: Failed to enqueue activity pruning: %v", err)
		}
		return
	}
	deleted, err := app.Activity.DeleteOldEntries(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		log.Printf("WARNING: Failed to prune activity: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Pruned %d activity entries older than %d days", deleted, days)
	}
}

// sessionSecret decodes the configured secret, accepting hex or raw bytes. An empty secret
// yields a random one that lasts until restart.
func sessionSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	log.Printf("Generated session secret (set SESSION_SECRET to persist)")
	return secret, nil
}
