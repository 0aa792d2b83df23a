package tasks

import "time"

// Config holds configuration for the task queue.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// ReleaseAfter is when stuck tasks are released back to the queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks are purged. Default: 1h
	CleanupInterval time.Duration

	// ActivityRetentionDays is the age past which prune_activity drops entries. Default: 90
	ActivityRetentionDays int
}

func DefaultConfig() Config {
	return Config{
		Workers:               2,
		ReleaseAfter:          15 * time.Minute,
		CleanupInterval:       time.Hour,
		ActivityRetentionDays: 90,
	}
}
