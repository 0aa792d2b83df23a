package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// ActivityPruner drops activity entries older than a retention window.
type ActivityPruner interface {
	DeleteOldEntries(retention time.Duration) (int, error)
}

// PruneActivityTask removes activity entries older than RetentionDays.
type PruneActivityTask struct {
	RetentionDays int `json:"retention_days"`
}

func (t PruneActivityTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prune_activity",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PruneActivityProcessor creates a processor function for PruneActivityTask.
func PruneActivityProcessor(pruner ActivityPruner, defaultDays int) backlite.QueueProcessor[PruneActivityTask] {
	return func(ctx context.Context, task PruneActivityTask) error {
		if pruner == nil {
			return fmt.Errorf("activity pruner not configured")
		}

		days := task.RetentionDays
		if days <= 0 {
			days = defaultDays
		}
		if days <= 0 {
			days = 90
		}

		deleted, err := pruner.DeleteOldEntries(time.Duration(days) * 24 * time.Hour)
		if err != nil {
			return fmt.Errorf("prune activity: %w", err)
		}

		log.Printf("[TASK] Pruned %d activity entries older than %d days", deleted, days)
		return nil
	}
}

func NewPruneActivityQueue(pruner ActivityPruner, defaultDays int) backlite.Queue {
	return backlite.NewQueue(PruneActivityProcessor(pruner, defaultDays))
}
