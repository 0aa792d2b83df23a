package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/libraryhub/internal/drafts"
)

// CatalogDraftsTask moves every confirmed draft into the catalog on behalf of UserID.
type CatalogDraftsTask struct {
	UserID uint `json:"user_id"`
}

func (t CatalogDraftsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "catalog_drafts",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     15 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CatalogDraftsProcessor creates a processor function for CatalogDraftsTask.
// Drafts the catalog rejects are marked failed on the draft itself, so the task only fails
// when the run is interrupted.
func CatalogDraftsProcessor(store *drafts.Store, books drafts.BookCreator, rec drafts.ActivityRecorder) backlite.QueueProcessor[CatalogDraftsTask] {
	return func(ctx context.Context, task CatalogDraftsTask) error {
		if store == nil || books == nil {
			return fmt.Errorf("draft cataloging not configured")
		}

		result, err := store.Catalog(ctx, books, rec, task.UserID)
		if err != nil {
			return fmt.Errorf("catalog drafts: %w", err)
		}

		log.Printf("[TASK] Cataloged %d drafts, %d failed", len(result.Cataloged), result.Failed)
		return nil
	}
}

func NewCatalogDraftsQueue(store *drafts.Store, books drafts.BookCreator, rec drafts.ActivityRecorder) backlite.Queue {
	return backlite.NewQueue(CatalogDraftsProcessor(store, books, rec))
}
