// Package activity records what happened to a user's loans, purchases and catalog work.
//
// Entries are kept newest first in a single storage slot. The log has no size limit unless
// Options.MaxEntries is set.
package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/storage"
)

// DefaultSlotKey is the slot the log is stored under when none is configured.
const DefaultSlotKey = "activities"

// DefaultDateFields lists metadata keys that hold timestamps.
var DefaultDateFields = []string{"dueAt", "loanedAt", "returnedAt", "renewedAt", "purchasedAt"}

type Options struct {
	// MaxEntries caps the log; the oldest entries are dropped first. 0 means unbounded.
	MaxEntries int
	// DateFields are metadata keys whose values are restored to time.Time on load.
	DateFields []string
}

// Log is the activity container.
type Log struct {
	slot *storage.Slot[[]domain.ActivityEntry]
	opts Options

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewLog loads the log stored under key.
func NewLog(backend storage.Backend, key string, opts Options) *Log {
	if key == "" {
		key = DefaultSlotKey
	}
	if opts.DateFields == nil {
		opts.DateFields = DefaultDateFields
	}

	slot := storage.NewSlot(backend, key, []domain.ActivityEntry{})
	// Entries share their backing array with the slot, so this fixes up the loaded value in place.
	loaded := slot.Value()
	for i := range loaded {
		loaded[i].Metadata = reviveMetadata(loaded[i].Metadata, opts.DateFields)
	}

	return &Log{
		slot:  slot,
		opts:  opts,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Append stamps a with a fresh id and the current time and puts it at the head of the log.
func (l *Log) Append(a domain.NewActivity) domain.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := domain.ActivityEntry{
		ID:          l.newID(),
		UserID:      a.UserID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		ItemID:      a.ItemID,
		ItemTitle:   a.ItemTitle,
		CreatedAt:   l.now(),
		Metadata:    a.Metadata,
		ActionURL:   a.ActionURL,
	}

	l.slot.Update(func(entries []domain.ActivityEntry) []domain.ActivityEntry {
		next := make([]domain.ActivityEntry, 0, len(entries)+1)
		next = append(next, entry)
		next = append(next, entries...)
		if l.opts.MaxEntries > 0 && len(next) > l.opts.MaxEntries {
			next = next[:l.opts.MaxEntries]
		}
		return next
	})
	return entry
}

// Entries returns the whole log, newest first.
func (l *Log) Entries() []domain.ActivityEntry {
	entries := l.slot.Value()
	out := make([]domain.ActivityEntry, len(entries))
	copy(out, entries)
	return out
}

// ForUser returns userID's entries, newest first.
func (l *Log) ForUser(userID uint) []domain.ActivityEntry {
	out := []domain.ActivityEntry{}
	for _, e := range l.slot.Value() {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func (l *Log) Len() int {
	return len(l.slot.Value())
}

// Clear empties the log.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slot.Set([]domain.ActivityEntry{})
}

// ClearUser drops userID's entries, leaving everyone else's, and returns how many were removed.
func (l *Log) ClearUser(userID uint) int {
	return l.removeWhere(func(e domain.ActivityEntry) bool { return e.UserID == userID })
}

// Prune drops entries created before olderThan and returns how many were removed.
func (l *Log) Prune(olderThan time.Time) int {
	return l.removeWhere(func(e domain.ActivityEntry) bool { return e.CreatedAt.Before(olderThan) })
}

func (l *Log) removeWhere(drop func(domain.ActivityEntry) bool) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	l.slot.Update(func(entries []domain.ActivityEntry) []domain.ActivityEntry {
		kept := make([]domain.ActivityEntry, 0, len(entries))
		for _, e := range entries {
			if drop(e) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		return kept
	})
	return removed
}

// DeleteOldEntries drops entries older than retention. It satisfies the prune task's cleaner.
func (l *Log) DeleteOldEntries(retention time.Duration) (int, error) {
	return l.Prune(l.now().Add(-retention)), nil
}

func reviveMetadata(md map[string]any, fields []string) map[string]any {
	if md == nil {
		return nil
	}
	revived, ok := storage.ReviveDates(md, fields).(map[string]any)
	if !ok {
		return md
	}
	return revived
}
