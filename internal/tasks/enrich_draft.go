package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/libraryhub/internal/domain"
)

// DraftEnricher fills intake drafts from external metadata.
type DraftEnricher interface {
	EnrichDraft(ctx context.Context, id string) (domain.BookDraft, error)
	EnrichPending(ctx context.Context) (enriched, failed int, err error)
}

// EnrichDraftTask looks up metadata for one draft, or for every pending draft when DraftID is empty.
type EnrichDraftTask struct {
	DraftID string `json:"draft_id,omitempty"`
}

func (t EnrichDraftTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_draft",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichDraftProcessor creates a processor function for EnrichDraftTask.
func EnrichDraftProcessor(enricher DraftEnricher) backlite.QueueProcessor[EnrichDraftTask] {
	return func(ctx context.Context, task EnrichDraftTask) error {
		if enricher == nil {
			return fmt.Errorf("draft enricher not configured")
		}

		if task.DraftID == "" {
			enriched, failed, err := enricher.EnrichPending(ctx)
			if err != nil {
				return fmt.Errorf("enrich pending drafts: %w", err)
			}
			log.Printf("[TASK] Draft enrichment complete: %d enriched, %d failed", enriched, failed)
			return nil
		}

		draft, err := enricher.EnrichDraft(ctx, task.DraftID)
		if err != nil {
			return fmt.Errorf("enrich draft %s: %w", task.DraftID, err)
		}
		if draft.Status == domain.DraftStatusFailed {
			log.Printf("[TASK] Draft %s: lookup failed: %s", draft.ID, draft.Error)
		} else {
			log.Printf("[TASK] Enriched draft %s (%s)", draft.ID, draft.Title)
		}
		return nil
	}
}

func NewEnrichDraftQueue(enricher DraftEnricher) backlite.Queue {
	return backlite.NewQueue(EnrichDraftProcessor(enricher))
}
